package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
)

const maxConcurrentReminders = 10

// ReminderService nudges users that still have quests left today or are
// about to lose their streak.
type ReminderService struct {
	store    ProgressStore
	calendar entities.Calendar
	schedule string
	notifier ReminderNotifier
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service. schedule is a standard
// five-field cron expression evaluated in the calendar's time zone.
func NewReminderService(
	store ProgressStore,
	calendar entities.Calendar,
	schedule string,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		store:    store,
		calendar: calendar,
		schedule: schedule,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the cron scheduler until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.calendar.Location()))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: processing daily reminders")
		if _, err := s.SendDailyReminders(ctx, time.Now()); err != nil {
			s.logger.Error("failed to send daily reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendDailyReminders sends a reminder to every user that needs one on now's
// logical day and returns how many were delivered. Delivery failures are
// logged and do not stop the batch.
func (s *ReminderService) SendDailyReminders(ctx context.Context, now time.Time) (int, error) {
	if s.notifier == nil {
		return 0, fmt.Errorf("notifier not initialized")
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list progress: %w", err)
	}

	today := s.calendar.Today(now)

	var sent atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReminders)

	for _, p := range records {
		reminder, ok := entities.ReminderFor(p, today)
		if !ok {
			continue
		}

		g.Go(func() error {
			if err := s.notifier.SendReminder(gctx, reminder); err != nil {
				s.logger.Error("failed to send reminder",
					zap.Int64("user_id", reminder.UserID),
					zap.String("kind", string(reminder.Kind)),
					zap.Error(err))
				return nil
			}
			sent.Add(1)
			return nil
		})
	}

	_ = g.Wait()

	s.logger.Info("reminders processed",
		zap.Int("users", len(records)),
		zap.Int64("total_sent", sent.Load()),
	)

	return int(sent.Load()), ctx.Err()
}
