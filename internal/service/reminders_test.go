package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/storage"
)

type recordingReminders struct {
	mu   sync.Mutex
	sent []entities.Reminder
	fail int64
}

func (r *recordingReminders) SendReminder(_ context.Context, reminder entities.Reminder) error {
	if reminder.UserID == r.fail {
		return errors.New("chat not found")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, reminder)
	return nil
}

func TestSendDailyReminders(t *testing.T) {
	store := storage.NewMemoryStore()
	calendar := entities.NewCalendar(ist, 4)
	progress := NewProgressionService(store, calendar, zap.NewNop())
	ctx := context.Background()

	// 1: active yesterday, streak at risk.
	if _, err := progress.EnsureRolledOver(ctx, 1, at(9, 10, 0)); err != nil {
		t.Fatal(err)
	}
	// 2: active today with quests left.
	if _, err := progress.LogCompletion(ctx, 2, "Pushups 17 reps", at(10, 9, 0)); err != nil {
		t.Fatal(err)
	}
	// 3: inactive for a week.
	if _, err := progress.EnsureRolledOver(ctx, 3, at(3, 10, 0)); err != nil {
		t.Fatal(err)
	}
	// 4: delivery fails.
	if _, err := progress.EnsureRolledOver(ctx, 4, at(10, 9, 0)); err != nil {
		t.Fatal(err)
	}

	notifier := &recordingReminders{fail: 4}
	svc := NewReminderService(store, calendar, "0 20 * * *", zap.NewNop())
	svc.SetNotifier(notifier)

	sent, err := svc.SendDailyReminders(ctx, at(10, 20, 0))
	if err != nil {
		t.Fatalf("SendDailyReminders() error = %v", err)
	}
	if sent != 2 {
		t.Errorf("SendDailyReminders() = %d, want 2", sent)
	}

	slices.SortFunc(notifier.sent, func(a, b entities.Reminder) int { return int(a.UserID - b.UserID) })
	want := []entities.Reminder{
		{UserID: 1, Kind: entities.ReminderStreakAtRisk, Streak: 1},
		{UserID: 2, Kind: entities.ReminderQuestsLeft, Remaining: len(entities.Catalog) - 1, Streak: 1},
	}
	if !slices.Equal(notifier.sent, want) {
		t.Errorf("sent = %+v, want %+v", notifier.sent, want)
	}
}

func TestSendDailyReminders_NoNotifier(t *testing.T) {
	svc := NewReminderService(storage.NewMemoryStore(), entities.NewCalendar(ist, 4), "0 20 * * *", zap.NewNop())

	if _, err := svc.SendDailyReminders(context.Background(), at(10, 20, 0)); err == nil {
		t.Error("SendDailyReminders() error = nil, want error")
	}
}
