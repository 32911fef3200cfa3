package entities

import "slices"

// WeightEntry is one body-weight sample keyed by logical day.
type WeightEntry struct {
	Date   Date    `json:"date"`
	Weight float64 `json:"weight"`
}

// HistorySnapshot records the cumulative XP a user had when a logical day ended.
type HistorySnapshot struct {
	Date Date `json:"date"`
	XP   int  `json:"xp"`
}

// Checkin is a photo proof-of-workout.
type Checkin struct {
	Date   Date   `json:"date"`
	FileID string `json:"file_id"`
}

// UserProgress is the whole gamification state of a single user.
// Level is never stored, it is derived from XP.
type UserProgress struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`

	XP             int  `json:"xp"`
	Streak         int  `json:"streak"`
	RestUsed       bool `json:"rest_used"`
	LastActiveDate Date `json:"last_active_date"`
	JoinDate       Date `json:"join_date"`

	// Quests and Completed always belong to LastActiveDate and are replaced together.
	Quests    []Quest  `json:"quests"`
	Completed []string `json:"completed"`

	WeightLog  []WeightEntry     `json:"weight_log"`
	GoalWeight *float64          `json:"goal_weight"`
	History    []HistorySnapshot `json:"history"`
	Checkins   []Checkin         `json:"checkins"`
}

// NewUserProgress creates an empty record. It has no quests until the first Rollover.
func NewUserProgress(userID int64, joinDate Date) *UserProgress {
	return &UserProgress{
		UserID:    userID,
		JoinDate:  joinDate,
		Quests:    []Quest{},
		Completed: []string{},
		WeightLog: []WeightEntry{},
		History:   []HistorySnapshot{},
		Checkins:  []Checkin{},
	}
}

// Level derives the current level from XP.
func (p *UserProgress) Level() int {
	return LevelForXP(p.XP)
}

// IsNewDay reports whether today differs from the last rollover day.
func (p *UserProgress) IsNewDay(today Date) bool {
	return !p.LastActiveDate.Equal(today)
}

// Rollover moves the record into the logical day today. It is a no-op when the
// record is already on that day and reports whether anything changed.
//
// On a new day:
//  1. The finished day is appended to History with its XP.
//  2. The streak grows when today directly follows the last active day, otherwise it restarts at 1.
//  3. Quests are regenerated from the updated level and streak; completions and the rest flag are cleared.
func (p *UserProgress) Rollover(today Date) bool {
	if !p.IsNewDay(today) {
		return false
	}

	if !p.LastActiveDate.IsZero() {
		p.History = append(p.History, HistorySnapshot{Date: p.LastActiveDate, XP: p.XP})
	}

	if !p.LastActiveDate.IsZero() && today.DaysSince(p.LastActiveDate) == 1 {
		p.Streak++
	} else {
		p.Streak = 1
	}

	p.Quests = GenerateQuests(p.Level(), p.Streak)
	p.Completed = []string{}
	p.RestUsed = false
	p.LastActiveDate = today

	return true
}

// FindQuest looks up today's quest whose label equals input after normalization.
func (p *UserProgress) FindQuest(input string) (Quest, bool) {
	want := NormalizeTask(input)
	if want == "" {
		return Quest{}, false
	}

	for _, q := range p.Quests {
		if NormalizeTask(q.Task) == want {
			return q, true
		}
	}
	return Quest{}, false
}

// IsCompleted reports whether the quest label was already completed today.
func (p *UserProgress) IsCompleted(task string) bool {
	return slices.Contains(p.Completed, task)
}

// Complete marks q as done and credits its reward. It returns the level before
// and after the credit so callers can announce level-ups.
func (p *UserProgress) Complete(q Quest) (before, after int) {
	before = p.Level()
	p.Completed = append(p.Completed, q.Task)
	p.XP += q.XPReward
	return before, p.Level()
}

// RemainingQuests returns today's quests that are not completed yet, in catalog order.
func (p *UserProgress) RemainingQuests() []Quest {
	out := make([]Quest, 0, len(p.Quests))
	for _, q := range p.Quests {
		if !p.IsCompleted(q.Task) {
			out = append(out, q)
		}
	}
	return out
}

// CompletedQuests returns today's completed quests, in catalog order.
func (p *UserProgress) CompletedQuests() []Quest {
	out := make([]Quest, 0, len(p.Completed))
	for _, q := range p.Quests {
		if p.IsCompleted(q.Task) {
			out = append(out, q)
		}
	}
	return out
}

// UseRest spends today's rest token and counts it as an active day.
// It returns false when the token was already spent.
func (p *UserProgress) UseRest() bool {
	if p.RestUsed {
		return false
	}
	p.RestUsed = true
	p.Streak++
	return true
}

// XPAt returns the cumulative XP recorded at the end of the latest day on or
// before day, or 0 when no snapshot is that old.
func (p *UserProgress) XPAt(day Date) int {
	xp := 0
	for _, s := range p.History {
		if s.Date.After(day) {
			break
		}
		xp = s.XP
	}
	return xp
}

// WeightsSince returns weight entries logged on or after day.
func (p *UserProgress) WeightsSince(day Date) []WeightEntry {
	out := make([]WeightEntry, 0, len(p.WeightLog))
	for _, w := range p.WeightLog {
		if !w.Date.Before(day) {
			out = append(out, w)
		}
	}
	return out
}

// Clone returns a deep copy so stores can hand out records without sharing slices.
func (p *UserProgress) Clone() *UserProgress {
	if p == nil {
		return nil
	}

	c := *p
	c.Quests = slices.Clone(p.Quests)
	c.Completed = slices.Clone(p.Completed)
	c.WeightLog = slices.Clone(p.WeightLog)
	c.History = slices.Clone(p.History)
	c.Checkins = slices.Clone(p.Checkins)
	if p.GoalWeight != nil {
		goal := *p.GoalWeight
		c.GoalWeight = &goal
	}
	return &c
}
