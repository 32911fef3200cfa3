package entities

// ReminderKind tells which nudge a user should receive.
type ReminderKind string

const (
	ReminderQuestsLeft   ReminderKind = "quests_left"    // active today, quests remaining
	ReminderStreakAtRisk ReminderKind = "streak_at_risk" // last active yesterday
)

// Reminder is a nudge to send to one user.
type Reminder struct {
	UserID    int64
	Kind      ReminderKind
	Remaining int // quests left today, for ReminderQuestsLeft
	Streak    int
}

// ReminderFor decides whether p needs a nudge on the logical day today.
// Records that finished every quest, or that were inactive for more than a day, get none.
func ReminderFor(p *UserProgress, today Date) (Reminder, bool) {
	if p == nil || p.LastActiveDate.IsZero() {
		return Reminder{}, false
	}

	switch {
	case p.LastActiveDate.Equal(today):
		remaining := len(p.RemainingQuests())
		if remaining == 0 {
			return Reminder{}, false
		}
		return Reminder{
			UserID:    p.UserID,
			Kind:      ReminderQuestsLeft,
			Remaining: remaining,
			Streak:    p.Streak,
		}, true

	case today.DaysSince(p.LastActiveDate) == 1 && p.Streak > 0:
		return Reminder{
			UserID: p.UserID,
			Kind:   ReminderStreakAtRisk,
			Streak: p.Streak,
		}, true
	}

	return Reminder{}, false
}
