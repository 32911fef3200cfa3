package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/service"
)

// Sender is the subset of *tgbotapi.BotAPI the delivery layer uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type ProgressService interface {
	EnsureUser(ctx context.Context, userID int64, username string, now time.Time) (*entities.UserProgress, error)
	ListQuests(ctx context.Context, userID int64, now time.Time) (*service.QuestBoard, error)
	LogCompletion(ctx context.Context, userID int64, input string, now time.Time) (*service.CompletionResult, error)
	GetStats(ctx context.Context, userID int64, now time.Time) (*service.Stats, error)
	UseRest(ctx context.Context, userID int64, now time.Time) (int, error)
	Reset(ctx context.Context, userID int64) (bool, error)
	LogWeight(ctx context.Context, userID int64, weight float64, now time.Time) error
	SetGoalWeight(ctx context.Context, userID int64, goal float64, now time.Time) error
	RecentWeights(ctx context.Context, userID int64, limit int, now time.Time) ([]entities.WeightEntry, error)
	GetProgress(ctx context.Context, userID int64, now time.Time) (*service.WeightProgress, error)
	AddCheckin(ctx context.Context, userID int64, fileID string, now time.Time) error
	Summary(ctx context.Context, userID int64, days int, now time.Time) (*service.Summary, error)
	Leaderboard(ctx context.Context, limit int) ([]service.LeaderboardEntry, error)
}

type TimerService interface {
	Start(ctx context.Context, chatID int64, task string, seconds int) (*service.Timer, error)
	Cancel(chatID int64) int
}

// ReminderForgetter drops the remembered reminder of a chat.
type ReminderForgetter interface {
	Forget(chatID int64)
}
