package entities

import (
	"math"
	"strings"
	"testing"
)

func TestGenerateQuests(t *testing.T) {
	quests := GenerateQuests(1, 1)
	if len(quests) != len(Catalog) {
		t.Fatalf("GenerateQuests() returned %d quests, want %d", len(quests), len(Catalog))
	}

	want := []Quest{
		{Task: "Pushups 17 reps", XPReward: 7},
		{Task: "Squats 27 reps", XPReward: 12},
		{Task: "Crunches 27 reps", XPReward: 12},
		{Task: "Russian Twists 37 reps", XPReward: 17},
		{Task: "Sit-ups 27 reps", XPReward: 12},
		{Task: "Jumping Jacks 47 reps", XPReward: 22},
		{Task: "Skipping 57 reps", XPReward: 22},
		{Task: "Running 200 meters", XPReward: 22},
		{Task: "Plank 37 seconds", XPReward: 12},
	}
	for i, q := range quests {
		if q != want[i] {
			t.Errorf("quest[%d] = %+v, want %+v", i, q, want[i])
		}
	}
}

func TestExerciseQuantity(t *testing.T) {
	running := Catalog[7]
	pushups := Catalog[0]

	tests := []struct {
		name     string
		exercise Exercise
		level    int
		streak   int
		want     int
	}{
		{name: "running first day", exercise: running, level: 1, streak: 1, want: 200},
		{name: "running third day", exercise: running, level: 1, streak: 3, want: 450},
		{name: "running ignores level", exercise: running, level: 9, streak: 2, want: 300},
		{name: "running without streak", exercise: running, level: 1, streak: 0, want: 200},
		{name: "pushups level 3 streak 10", exercise: pushups, level: 3, streak: 10, want: 10 + 15 + 20},
		{name: "running saturates at streak 96", exercise: running, level: 1, streak: 96, want: math.MaxInt},
		{name: "running saturates at streak 2000", exercise: running, level: 1, streak: 2000, want: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.exercise.Quantity(tt.level, tt.streak); got != tt.want {
				t.Errorf("Quantity(%d, %d) = %d, want %d", tt.level, tt.streak, got, tt.want)
			}
		})
	}
}

func TestGenerateQuests_LongStreak(t *testing.T) {
	for _, streak := range []int{95, 96, 100, 200, 2000} {
		for _, q := range GenerateQuests(MaxLevel, streak) {
			if strings.Contains(q.Task, " -") {
				t.Errorf("streak %d: quest %q has a negative quantity", streak, q.Task)
			}
		}

		running := Catalog[7].Quantity(MaxLevel, streak)
		if running <= 0 {
			t.Errorf("streak %d: running quantity = %d, want positive", streak, running)
		}
	}
}

func TestNormalizeTask(t *testing.T) {
	tests := map[string]string{
		"  Pushups 17 reps ":   "pushups 17 reps",
		"do pushups 17   reps": "pushups 17 reps",
		"DO Plank 37 seconds":  "plank 37 seconds",
		"":                     "",
	}

	for in, want := range tests {
		if got := NormalizeTask(in); got != want {
			t.Errorf("NormalizeTask(%q) = %q, want %q", in, got, want)
		}
	}
}
