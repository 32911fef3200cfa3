package entities

import (
	"fmt"
	"math"
	"strings"
)

// Growth selects how an exercise quantity scales with the streak.
type Growth string

const (
	GrowthLinear    Growth = "linear"    // base + level*5 + streak*2
	GrowthEndurance Growth = "endurance" // base * 1.5^(streak-1)
)

// Quest scaling constants.
const (
	LevelQuantityStep  = 5
	StreakQuantityStep = 2
	LevelXPStep        = 2
	EnduranceRate      = 1.5
)

// Exercise is a catalog archetype from which daily quests are generated.
type Exercise struct {
	Name         string
	Unit         string
	BaseQuantity int
	BaseXP       int
	Growth       Growth
}

// Catalog is the fixed, ordered list of daily exercises.
var Catalog = []Exercise{
	{Name: "Pushups", Unit: "reps", BaseQuantity: 10, BaseXP: 5, Growth: GrowthLinear},
	{Name: "Squats", Unit: "reps", BaseQuantity: 20, BaseXP: 10, Growth: GrowthLinear},
	{Name: "Crunches", Unit: "reps", BaseQuantity: 20, BaseXP: 10, Growth: GrowthLinear},
	{Name: "Russian Twists", Unit: "reps", BaseQuantity: 30, BaseXP: 15, Growth: GrowthLinear},
	{Name: "Sit-ups", Unit: "reps", BaseQuantity: 20, BaseXP: 10, Growth: GrowthLinear},
	{Name: "Jumping Jacks", Unit: "reps", BaseQuantity: 40, BaseXP: 20, Growth: GrowthLinear},
	{Name: "Skipping", Unit: "reps", BaseQuantity: 50, BaseXP: 20, Growth: GrowthLinear},
	{Name: "Running", Unit: "meters", BaseQuantity: 200, BaseXP: 20, Growth: GrowthEndurance},
	{Name: "Plank", Unit: "seconds", BaseQuantity: 30, BaseXP: 10, Growth: GrowthLinear},
}

// Quantity computes today's target for the exercise. Endurance targets saturate
// at math.MaxInt on very long streaks.
func (e Exercise) Quantity(level, streak int) int {
	if e.Growth == GrowthEndurance {
		if streak < 1 {
			streak = 1
		}
		q := math.Round(float64(e.BaseQuantity) * math.Pow(EnduranceRate, float64(streak-1)))
		if q >= math.MaxInt {
			return math.MaxInt
		}
		return int(q)
	}
	return e.BaseQuantity + level*LevelQuantityStep + streak*StreakQuantityStep
}

// XPReward computes the reward for completing the exercise at the given level.
func (e Exercise) XPReward(level int) int {
	return e.BaseXP + level*LevelXPStep
}

// Quest is one generated daily task. Task is both the display text and the
// identity used to match completions, so the quantity is part of the identity.
type Quest struct {
	Task     string `json:"task"`
	XPReward int    `json:"xp"`
}

// GenerateQuests builds one quest per catalog entry, in catalog order.
func GenerateQuests(level, streak int) []Quest {
	quests := make([]Quest, 0, len(Catalog))
	for _, e := range Catalog {
		quests = append(quests, Quest{
			Task:     fmt.Sprintf("%s %d %s", e.Name, e.Quantity(level, streak), e.Unit),
			XPReward: e.XPReward(level),
		})
	}
	return quests
}

// NormalizeTask canonicalizes user input and quest labels for comparison:
// case-folded, whitespace-collapsed, with a leading "do " removed.
func NormalizeTask(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.TrimPrefix(s, "do ")
}
