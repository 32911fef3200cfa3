package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/repository"
)

// ProgressionService owns the gamification rules for one user at a time:
// daily rollover, quest completion, rest days, weight tracking and summaries.
// Every operation runs load, rollover, mutate and persist under a per-user lock.
type ProgressionService struct {
	store    ProgressStore
	calendar entities.Calendar
	matcher  *QuestMatcher
	locks    *userLocks
	logger   *zap.Logger
}

// NewProgressionService creates the service.
func NewProgressionService(store ProgressStore, calendar entities.Calendar, logger *zap.Logger) *ProgressionService {
	return &ProgressionService{
		store:    store,
		calendar: calendar,
		matcher:  NewQuestMatcher(),
		locks:    newUserLocks(),
		logger:   logger,
	}
}

// QuestBoard is today's quest list split by state.
type QuestBoard struct {
	Level     int
	Streak    int
	Remaining []entities.Quest
	Completed []entities.Quest
}

// CompletionResult describes a successfully logged quest.
type CompletionResult struct {
	Task          string
	XPAwarded     int
	TotalXP       int
	PreviousLevel int
	Level         int
}

// LeveledUp reports whether the completion crossed a level threshold.
func (r CompletionResult) LeveledUp() bool {
	return r.Level > r.PreviousLevel
}

// Stats is the /stats view of a user.
type Stats struct {
	Level       int
	XP          int
	Streak      int
	XPToNext    int
	MaxLevel    bool
	QuestsDone  int
	QuestsTotal int
}

// WeightProgress compares the first and latest weight samples with the goal.
type WeightProgress struct {
	Start   float64
	Current float64
	Goal    float64
	Lost    float64
	ToGoal  float64
}

// Summary aggregates activity over the last Days logical days, today included.
type Summary struct {
	Days         int
	From         entities.Date
	To           entities.Date
	XPEarned     int
	TotalXP      int
	Streak       int
	Level        int
	WeightStart  *float64
	WeightEnd    *float64
	CheckinCount int
}

// LeaderboardEntry is one ranked user.
type LeaderboardEntry struct {
	Rank     int
	UserID   int64
	Username string
	XP       int
	Level    int
}

// Today returns the logical day for now.
func (s *ProgressionService) Today(now time.Time) entities.Date {
	return s.calendar.Today(now)
}

// EnsureUser creates the user's record on first contact and keeps the display name fresh.
func (s *ProgressionService) EnsureUser(ctx context.Context, userID int64, username string, now time.Time) (*entities.UserProgress, error) {
	return s.update(ctx, userID, now, func(p *entities.UserProgress) (bool, error) {
		if username == "" || p.Username == username {
			return false, nil
		}
		p.Username = username
		return true, nil
	})
}

// EnsureRolledOver returns the user's record moved into now's logical day.
// Calling it again on the same day changes nothing.
func (s *ProgressionService) EnsureRolledOver(ctx context.Context, userID int64, now time.Time) (*entities.UserProgress, error) {
	return s.update(ctx, userID, now, noop)
}

// ListQuests returns today's remaining and completed quests.
func (s *ProgressionService) ListQuests(ctx context.Context, userID int64, now time.Time) (*QuestBoard, error) {
	p, err := s.EnsureRolledOver(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &QuestBoard{
		Level:     p.Level(),
		Streak:    p.Streak,
		Remaining: p.RemainingQuests(),
		Completed: p.CompletedQuests(),
	}, nil
}

// LogCompletion marks the quest named by input as done and credits its XP.
// It fails with ErrTaskNotRecognized or ErrAlreadyCompleted.
func (s *ProgressionService) LogCompletion(ctx context.Context, userID int64, input string, now time.Time) (*CompletionResult, error) {
	var result CompletionResult

	_, err := s.update(ctx, userID, now, func(p *entities.UserProgress) (bool, error) {
		q, err := s.matcher.Match(p, input)
		if err != nil {
			return false, err
		}
		if p.IsCompleted(q.Task) {
			return false, ErrAlreadyCompleted
		}

		before, after := p.Complete(q)
		result = CompletionResult{
			Task:          q.Task,
			XPAwarded:     q.XPReward,
			TotalXP:       p.XP,
			PreviousLevel: before,
			Level:         after,
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quest completed",
		zap.Int64("user_id", userID),
		zap.String("task", result.Task),
		zap.Int("xp_awarded", result.XPAwarded),
		zap.Int("total_xp", result.TotalXP),
	)
	if result.LeveledUp() {
		s.logger.Info("level up",
			zap.Int64("user_id", userID),
			zap.Int("from", result.PreviousLevel),
			zap.Int("to", result.Level),
		)
	}

	return &result, nil
}

// GetStats returns level, XP and streak.
func (s *ProgressionService) GetStats(ctx context.Context, userID int64, now time.Time) (*Stats, error) {
	p, err := s.EnsureRolledOver(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	missing, hasNext := entities.XPToNextLevel(p.XP)
	return &Stats{
		Level:       p.Level(),
		XP:          p.XP,
		Streak:      p.Streak,
		XPToNext:    missing,
		MaxLevel:    !hasNext,
		QuestsDone:  len(p.Completed),
		QuestsTotal: len(p.Quests),
	}, nil
}

// UseRest spends today's rest token, growing the streak by one.
// It returns the new streak or ErrRestAlreadyUsed.
func (s *ProgressionService) UseRest(ctx context.Context, userID int64, now time.Time) (int, error) {
	p, err := s.update(ctx, userID, now, func(p *entities.UserProgress) (bool, error) {
		if !p.UseRest() {
			return false, ErrRestAlreadyUsed
		}
		return true, nil
	})
	if err != nil {
		return 0, err
	}

	return p.Streak, nil
}

// Reset deletes the user's record. It reports whether there was anything to delete.
func (s *ProgressionService) Reset(ctx context.Context, userID int64) (bool, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	existed, err := s.store.Delete(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("delete progress: %w", err)
	}

	s.logger.Info("progress reset", zap.Int64("user_id", userID), zap.Bool("existed", existed))
	return existed, nil
}

// LogWeight appends a weight sample for today.
func (s *ProgressionService) LogWeight(ctx context.Context, userID int64, weight float64, now time.Time) error {
	if !entities.ValidMeasurement(weight) {
		return ErrInvalidNumericInput
	}

	_, err := s.update(ctx, userID, now, func(p *entities.UserProgress) (bool, error) {
		p.WeightLog = append(p.WeightLog, entities.WeightEntry{
			Date:   s.calendar.Today(now),
			Weight: weight,
		})
		return true, nil
	})
	return err
}

// SetGoalWeight stores the target weight.
func (s *ProgressionService) SetGoalWeight(ctx context.Context, userID int64, goal float64, now time.Time) error {
	if !entities.ValidMeasurement(goal) {
		return ErrInvalidNumericInput
	}

	_, err := s.update(ctx, userID, now, func(p *entities.UserProgress) (bool, error) {
		p.GoalWeight = &goal
		return true, nil
	})
	return err
}

// RecentWeights returns up to limit latest weight samples, oldest first.
func (s *ProgressionService) RecentWeights(ctx context.Context, userID int64, limit int, now time.Time) ([]entities.WeightEntry, error) {
	p, err := s.EnsureRolledOver(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	log := p.WeightLog
	if limit > 0 && len(log) > limit {
		log = log[len(log)-limit:]
	}
	return slices.Clone(log), nil
}

// GetProgress compares the first and latest weights with the goal.
// It fails with ErrMissingPrerequisiteData until a weight and a goal exist.
func (s *ProgressionService) GetProgress(ctx context.Context, userID int64, now time.Time) (*WeightProgress, error) {
	p, err := s.EnsureRolledOver(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if len(p.WeightLog) == 0 || p.GoalWeight == nil {
		return nil, ErrMissingPrerequisiteData
	}

	start := p.WeightLog[0].Weight
	current := p.WeightLog[len(p.WeightLog)-1].Weight
	goal := *p.GoalWeight

	return &WeightProgress{
		Start:   start,
		Current: current,
		Goal:    goal,
		Lost:    start - current,
		ToGoal:  current - goal,
	}, nil
}

// AddCheckin stores a workout photo for today.
func (s *ProgressionService) AddCheckin(ctx context.Context, userID int64, fileID string, now time.Time) error {
	if fileID == "" {
		return ErrMissingPrerequisiteData
	}

	_, err := s.update(ctx, userID, now, func(p *entities.UserProgress) (bool, error) {
		p.Checkins = append(p.Checkins, entities.Checkin{
			Date:   s.calendar.Today(now),
			FileID: fileID,
		})
		return true, nil
	})
	return err
}

// Summary reports XP, weight and check-ins over the last days logical days.
func (s *ProgressionService) Summary(ctx context.Context, userID int64, days int, now time.Time) (*Summary, error) {
	if days < 1 {
		return nil, ErrInvalidNumericInput
	}

	p, err := s.EnsureRolledOver(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	today := s.calendar.Today(now)
	from := today.AddDays(-(days - 1))

	sum := &Summary{
		Days:     days,
		From:     from,
		To:       today,
		XPEarned: p.XP - p.XPAt(from.AddDays(-1)),
		TotalXP:  p.XP,
		Streak:   p.Streak,
		Level:    p.Level(),
	}

	if weights := p.WeightsSince(from); len(weights) > 0 {
		first, last := weights[0].Weight, weights[len(weights)-1].Weight
		sum.WeightStart, sum.WeightEnd = &first, &last
	}
	for _, c := range p.Checkins {
		if !c.Date.Before(from) {
			sum.CheckinCount++
		}
	}

	return sum, nil
}

// Leaderboard ranks users by XP, ties broken by user ID.
func (s *ProgressionService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 {
		return nil, ErrInvalidNumericInput
	}

	var (
		records []*entities.UserProgress
		err     error
	)
	if ranked, ok := s.store.(leaderboardStore); ok {
		records, err = ranked.TopByXP(ctx, limit)
	} else {
		records, err = s.store.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	slices.SortStableFunc(records, func(a, b *entities.UserProgress) int {
		if c := cmp.Compare(b.XP, a.XP); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	if len(records) > limit {
		records = records[:limit]
	}

	out := make([]LeaderboardEntry, 0, len(records))
	for i, p := range records {
		out = append(out, LeaderboardEntry{
			Rank:     i + 1,
			UserID:   p.UserID,
			Username: p.Username,
			XP:       p.XP,
			Level:    p.Level(),
		})
	}
	return out, nil
}

func noop(*entities.UserProgress) (bool, error) { return false, nil }

// update loads or creates the record, rolls it over to now's logical day and
// applies fn. The record is persisted when the rollover or fn changed it, even
// if fn rejected the operation, so a new day is never lost.
func (s *ProgressionService) update(
	ctx context.Context,
	userID int64,
	now time.Time,
	fn func(p *entities.UserProgress) (bool, error),
) (*entities.UserProgress, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	today := s.calendar.Today(now)

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProgressNotFound) {
			return nil, fmt.Errorf("get progress: %w", err)
		}
		p = entities.NewUserProgress(userID, today)
		s.logger.Info("new user", zap.Int64("user_id", userID))
	}

	rolled := p.Rollover(today)
	if rolled {
		s.logger.Debug("day rollover",
			zap.Int64("user_id", userID),
			zap.Stringer("day", today),
			zap.Int("streak", p.Streak),
		)
	}

	changed, fnErr := fn(p)

	if rolled || changed {
		if err := s.store.Put(ctx, p); err != nil {
			return nil, fmt.Errorf("put progress: %w", err)
		}
	}

	if fnErr != nil {
		return nil, fnErr
	}
	return p, nil
}
