package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/service"
)

// Commands lists the bot commands registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "quests", Description: "Today's quests"},
		{Command: "log", Description: "Log a completed quest"},
		{Command: "stats", Description: "Level, XP and streak"},
		{Command: "levels", Description: "XP needed for every level"},
		{Command: "rest", Description: "Use today's rest day"},
		{Command: "weight", Description: "Log your weight (kg)"},
		{Command: "weightlog", Description: "Recent weight entries"},
		{Command: "targetweight", Description: "Set your goal weight (kg)"},
		{Command: "progress", Description: "Weight progress"},
		{Command: "bmi", Description: "Body mass index: /bmi 70 1.75 25"},
		{Command: "weekly", Description: "Weekly summary"},
		{Command: "monthly", Description: "Monthly summary"},
		{Command: "leaderboard", Description: "Top hunters by XP"},
		{Command: "timer", Description: "Workout timer: /timer plank 60"},
		{Command: "reset", Description: "Delete all progress"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) handleStart(name string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(ctx, newMessage(chatID, renderWelcome(name)))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(ctx, newPlainMessage(chatID, msgHelp))
	}
}

func (h *Handler) handleQuests(now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		board, err := h.progressService.ListQuests(ctx, chatID, now)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, renderQuestBoard(board))
		msg.ReplyMarkup = buildQuestKeyboard(board)
		return h.send(ctx, msg)
	}
}

func (h *Handler) handleLog(args string, now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if strings.TrimSpace(args) == "" {
			return usageError{msgUsageLog}
		}

		res, err := h.progressService.LogCompletion(ctx, chatID, args, now)
		if err != nil {
			return err
		}

		return h.send(ctx, newMessage(chatID, renderCompletion(res)))
	}
}

func (h *Handler) handleStats(now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.progressService.GetStats(ctx, chatID, now)
		if err != nil {
			return err
		}
		return h.send(ctx, newMessage(chatID, renderStats(stats)))
	}
}

func (h *Handler) handleLevels() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(ctx, newMessage(chatID, renderLevels()))
	}
}

func (h *Handler) handleRest(now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		streak, err := h.progressService.UseRest(ctx, chatID, now)
		if err != nil {
			return err
		}
		return h.send(ctx, newMessage(chatID, renderRest(streak)))
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgResetConfirm)
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(ctx, msg)
	}
}

func (h *Handler) handleWeight(args string, now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		weight, err := parseNumber(args)
		if err != nil {
			return usageError{msgUsageWeight}
		}

		if err := h.progressService.LogWeight(ctx, chatID, weight, now); err != nil {
			return err
		}

		return h.send(ctx, newMessage(chatID, md(fmt.Sprintf("✅ Weight logged: %s kg", formatKg(weight)))))
	}
}

func (h *Handler) handleWeightLog(now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.progressService.RecentWeights(ctx, chatID, h.opts.WeightLogSize, now)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return h.send(ctx, newPlainMessage(chatID, msgNoWeightLogs))
		}
		return h.send(ctx, newMessage(chatID, renderWeights(entries)))
	}
}

func (h *Handler) handleTargetWeight(args string, now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		goal, err := parseNumber(args)
		if err != nil {
			return usageError{msgUsageTargetWeight}
		}

		if err := h.progressService.SetGoalWeight(ctx, chatID, goal, now); err != nil {
			return err
		}

		return h.send(ctx, newMessage(chatID, md(fmt.Sprintf("🎯 Goal set: %s kg", formatKg(goal)))))
	}
}

func (h *Handler) handleProgress(now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p, err := h.progressService.GetProgress(ctx, chatID, now)
		if err != nil {
			return err
		}
		return h.send(ctx, newMessage(chatID, renderProgress(p)))
	}
}

func (h *Handler) handleBMI(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		weight, height, age, err := parseBMIArgs(args)
		if err != nil {
			return usageError{msgUsageBMI}
		}

		report, ok := entities.ComputeBMI(weight, height, age)
		if !ok {
			return usageError{msgUsageBMI}
		}

		return h.send(ctx, newMessage(chatID, renderBMI(report)))
	}
}

func (h *Handler) handleLeaderboard() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.progressService.Leaderboard(ctx, h.opts.LeaderboardSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return h.send(ctx, newPlainMessage(chatID, msgLeaderboardEmpty))
		}
		return h.send(ctx, newMessage(chatID, renderLeaderboard(entries)))
	}
}

func (h *Handler) handleTimer(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if strings.EqualFold(strings.TrimSpace(args), "stop") {
			stopped := h.timerService.Cancel(chatID)
			if stopped == 0 {
				return h.send(ctx, newPlainMessage(chatID, msgNoTimers))
			}
			return h.send(ctx, newPlainMessage(chatID, fmt.Sprintf("⏹️ Stopped %d timer(s).", stopped)))
		}

		task, seconds, err := parseTimerArgs(args)
		if err != nil {
			return usageError{msgUsageTimer}
		}

		// The timer outlives this update, it is bound to the handler's run context.
		timer, err := h.timerService.Start(ctx, chatID, task, seconds)
		if errors.Is(err, service.ErrInvalidNumericInput) {
			return usageError{msgUsageTimer}
		}
		if err != nil {
			return err
		}

		return h.send(ctx, newMessage(chatID, renderTimerStarted(timer)))
	}
}

func (h *Handler) handleSummary(title string, days int, now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sum, err := h.progressService.Summary(ctx, chatID, days, now)
		if err != nil {
			return err
		}
		return h.send(ctx, newMessage(chatID, renderSummary(title, sum)))
	}
}

func (h *Handler) handleCheckin(fileID string, now time.Time) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.progressService.AddCheckin(ctx, chatID, fileID, now); err != nil {
			return err
		}
		return h.send(ctx, newPlainMessage(chatID, msgCheckinSaved))
	}
}
