package entities

// LevelThresholds holds the cumulative XP needed to reach each level.
// Level i+1 starts at LevelThresholds[i].
var LevelThresholds = [...]int{0, 1000, 3500, 7000, 12000, 18000, 25000, 33000, 42000, 52000}

// MaxLevel is the highest reachable level.
const MaxLevel = len(LevelThresholds)

// LevelForXP maps cumulative XP to a level in [1, MaxLevel].
func LevelForXP(xp int) int {
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if xp >= LevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// XPToNextLevel reports how much XP is missing to reach the next level.
// ok is false when the user is already at MaxLevel.
func XPToNextLevel(xp int) (missing int, ok bool) {
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 0, false
	}
	return LevelThresholds[level] - xp, true
}

// LevelRange describes the XP interval of a single level.
// MaxXP is -1 for the last, open-ended level.
type LevelRange struct {
	Level int
	MinXP int
	MaxXP int
}

// LevelRanges lists every level with its XP interval.
func LevelRanges() []LevelRange {
	ranges := make([]LevelRange, 0, MaxLevel)
	for i, minXP := range LevelThresholds {
		r := LevelRange{Level: i + 1, MinXP: minXP, MaxXP: -1}
		if i+1 < len(LevelThresholds) {
			r.MaxXP = LevelThresholds[i+1] - 1
		}
		ranges = append(ranges, r)
	}
	return ranges
}
