package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/storage"
)

// Notifier pushes messages that are not replies: timer updates and daily reminders.
type Notifier struct {
	outbox    *Outbox
	reminders *storage.ReminderStorage
	logger    *zap.Logger
}

func NewNotifier(outbox *Outbox, reminders *storage.ReminderStorage, logger *zap.Logger) *Notifier {
	return &Notifier{
		outbox:    outbox,
		reminders: reminders,
		logger:    logger,
	}
}

// Notify sends plain text to the chat.
func (n *Notifier) Notify(ctx context.Context, chatID int64, text string) error {
	if _, err := n.outbox.Send(ctx, newPlainMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendReminder posts the reminder and deletes the previous one, so a chat
// holds at most one reminder at a time.
func (n *Notifier) SendReminder(ctx context.Context, reminder entities.Reminder) error {
	chatID := reminder.UserID

	msg := newMessage(chatID, renderReminder(reminder))
	msg.ReplyMarkup = buildReminderKeyboard()

	sent, err := n.outbox.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	prev, hadPrev := n.reminders.UpsertAndGetPrev(chatID, sent.MessageID, time.Now())
	if !hadPrev || prev.MessageID == sent.MessageID {
		return nil
	}

	if _, err := n.outbox.Request(ctx, tgbotapi.NewDeleteMessage(chatID, prev.MessageID)); err != nil {
		// Messages older than 48 hours cannot be deleted; that is fine.
		n.logger.Debug("failed to delete previous reminder",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", prev.MessageID),
			zap.Error(err),
		)
	}

	return nil
}
