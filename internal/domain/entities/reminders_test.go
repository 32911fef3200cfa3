package entities

import "testing"

func TestReminderFor(t *testing.T) {
	today := NewDate(2024, 6, 10)

	active := NewUserProgress(1, today)
	active.Rollover(today)

	finished := NewUserProgress(2, today)
	finished.Rollover(today)
	for _, q := range finished.Quests {
		finished.Complete(q)
	}

	yesterday := NewUserProgress(3, today.AddDays(-1))
	yesterday.Rollover(today.AddDays(-1))

	stale := NewUserProgress(4, today.AddDays(-3))
	stale.Rollover(today.AddDays(-3))

	tests := []struct {
		name     string
		p        *UserProgress
		wantKind ReminderKind
		wantOK   bool
	}{
		{name: "quests left", p: active, wantKind: ReminderQuestsLeft, wantOK: true},
		{name: "all done", p: finished},
		{name: "streak at risk", p: yesterday, wantKind: ReminderStreakAtRisk, wantOK: true},
		{name: "stale", p: stale},
		{name: "never active", p: NewUserProgress(5, today)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ReminderFor(tt.p, today)
			if ok != tt.wantOK {
				t.Fatalf("ReminderFor() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && r.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", r.Kind, tt.wantKind)
			}
		})
	}
}
