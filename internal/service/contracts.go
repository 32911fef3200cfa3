package service

import (
	"context"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
)

// ProgressStore persists whole user records. Get returns
// repository.ErrProgressNotFound when the user has no record.
type ProgressStore interface {
	Get(ctx context.Context, userID int64) (*entities.UserProgress, error)
	Put(ctx context.Context, p *entities.UserProgress) error
	Delete(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]*entities.UserProgress, error)
}

// leaderboardStore is implemented by stores that can rank users themselves.
type leaderboardStore interface {
	TopByXP(ctx context.Context, limit int) ([]*entities.UserProgress, error)
}

// Notifier delivers plain-text messages to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// ReminderNotifier delivers daily reminders.
type ReminderNotifier interface {
	SendReminder(ctx context.Context, reminder entities.Reminder) error
}
