package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/shadowfit-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answer(ctx, cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var (
		toast string
		err   error
	)

	switch data.Action {
	case actionLog:
		toast, err = h.handleLogCallback(ctx, cb, data.param(0))
	case actionQuests:
		err = h.refreshQuests(ctx, chatID, cb.Message.MessageID)
	case actionReset:
		err = h.handleResetCallback(ctx, cb, data.param(0))
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		if text, ok := userMessage(err); ok {
			toast = text
		} else {
			h.logger.Error("callback error",
				zap.Int64("chat_id", chatID),
				zap.String("data", cb.Data),
				zap.Error(err),
			)
			toast = msgInternalError
		}
	}

	// Remove the user's "clock".
	h.answer(ctx, cb.ID, toast)
}

func (h *Handler) handleLogCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, task string) (string, error) {
	chatID := cb.Message.Chat.ID

	res, err := h.progressService.LogCompletion(ctx, chatID, task, h.now())
	if err != nil {
		var notRecognized *service.TaskNotRecognizedError
		if errors.As(err, &notRecognized) {
			// A button from an earlier day: show the current list instead.
			_ = h.refreshQuests(ctx, chatID, cb.Message.MessageID)
			return msgNotRecognized, nil
		}
		return "", err
	}

	if err := h.refreshQuests(ctx, chatID, cb.Message.MessageID); err != nil {
		return "", err
	}

	if res.LeveledUp() {
		_ = h.send(ctx, newMessage(chatID, renderCompletion(res)))
	}

	return fmt.Sprintf("✅ +%d XP", res.XPAwarded), nil
}

func (h *Handler) refreshQuests(ctx context.Context, chatID int64, messageID int) error {
	board, err := h.progressService.ListQuests(ctx, chatID, h.now())
	if err != nil {
		return err
	}

	edit := newEdit(chatID, messageID, renderQuestBoard(board))
	kb := buildQuestKeyboard(board)
	edit.ReplyMarkup = &kb

	h.request(ctx, edit)
	return nil
}

func (h *Handler) handleResetCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, choice string) error {
	chatID := cb.Message.Chat.ID

	text := msgResetCancelled
	if choice == resetConfirm {
		existed, err := h.progressService.Reset(ctx, chatID)
		if err != nil {
			return err
		}

		text = msgNothingToReset
		if existed {
			text = msgResetDone
			if h.reminders != nil {
				h.reminders.Forget(chatID)
			}
		}
	}

	h.request(ctx, tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, text))
	return nil
}

func (h *Handler) answer(ctx context.Context, callbackID, text string) {
	h.request(ctx, tgbotapi.NewCallback(callbackID, text))
}
