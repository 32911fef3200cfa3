package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Options tunes command output.
type Options struct {
	LeaderboardSize int
	WeightLogSize   int
}

type Handler struct {
	outbox          *Outbox
	logger          *zap.Logger
	progressService ProgressService
	timerService    TimerService
	reminders       ReminderForgetter
	opts            Options
	now             func() time.Time
}

func NewHandler(
	outbox *Outbox,
	logger *zap.Logger,
	progressService ProgressService,
	timerService TimerService,
	reminders ReminderForgetter,
	opts Options,
) *Handler {
	if opts.LeaderboardSize < 1 {
		opts.LeaderboardSize = 5
	}
	if opts.WeightLogSize < 1 {
		opts.WeightLogSize = 7
	}

	return &Handler{
		outbox:          outbox,
		logger:          logger,
		progressService: progressService,
		timerService:    timerService,
		reminders:       reminders,
		opts:            opts,
		now:             time.Now,
	}
}

// Run dispatches updates until ctx is cancelled or the channel is closed.
// Updates are handled one at a time.
func (h *Handler) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes a single update.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.handleMessage(ctx, update.Message)
}

func (h *Handler) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	now := h.now()

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", m.Text),
	)

	var username, firstName string
	if m.From != nil {
		username, firstName = m.From.UserName, m.From.FirstName
	}
	// /reset must see whether a record existed before this message.
	if m.Command() != "reset" {
		if _, err := h.progressService.EnsureUser(ctx, chatID, displayName(username, firstName), now); err != nil {
			h.logger.Error("failed to ensure user",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}

	if len(m.Photo) > 0 {
		_ = h.withErrorHandling("photo", h.handleCheckin(m.Photo[len(m.Photo)-1].FileID, now))(ctx, chatID)
		return
	}

	if !m.IsCommand() {
		if m.Text != "" {
			h.sendPlain(ctx, chatID, msgUnknownInput)
		}
		return
	}

	command := m.Command()
	args := m.CommandArguments()

	var fn HandlerFunc
	switch command {
	case "start":
		fn = h.handleStart(displayName(username, firstName))
	case "help":
		fn = h.handleHelp()
	case "quests":
		fn = h.handleQuests(now)
	case "log":
		fn = h.handleLog(args, now)
	case "stats":
		fn = h.handleStats(now)
	case "levels":
		fn = h.handleLevels()
	case "rest":
		fn = h.handleRest(now)
	case "reset":
		fn = h.handleReset()
	case "weight":
		fn = h.handleWeight(args, now)
	case "weightlog":
		fn = h.handleWeightLog(now)
	case "targetweight":
		fn = h.handleTargetWeight(args, now)
	case "progress":
		fn = h.handleProgress(now)
	case "bmi":
		fn = h.handleBMI(args)
	case "leaderboard":
		fn = h.handleLeaderboard()
	case "timer":
		fn = h.handleTimer(args)
	case "weekly":
		fn = h.handleSummary("📅 Weekly Summary", 7, now)
	case "monthly":
		fn = h.handleSummary("📆 Monthly Summary", 30, now)
	default:
		h.sendPlain(ctx, chatID, msgUnknownCommand)
		return
	}

	_ = h.withErrorHandling(command, fn)(ctx, chatID)
}

func (h *Handler) send(ctx context.Context, c tgbotapi.Chattable) error {
	if _, err := h.outbox.Send(ctx, c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}

func (h *Handler) sendPlain(ctx context.Context, chatID int64, text string) {
	_ = h.send(ctx, newPlainMessage(chatID, text))
}

func (h *Handler) request(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := h.outbox.Request(ctx, c); err != nil {
		h.logger.Warn("telegram request failed", zap.Error(err))
	}
}
