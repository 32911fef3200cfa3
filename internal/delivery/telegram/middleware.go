package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/shadowfit-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// usageError asks the user to retry a command with correct arguments.
type usageError struct {
	usage string
}

func (e usageError) Error() string { return e.usage }

// withErrorHandling replies to expected errors with their user-facing text and
// logs everything else before sending a generic message.
func (h *Handler) withErrorHandling(command string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if text, ok := userMessage(err); ok {
			h.logger.Debug("command rejected",
				zap.Int64("chat_id", chatID),
				zap.String("command", command),
				zap.Error(err),
			)
			h.sendPlain(ctx, chatID, text)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.String("command", command),
			zap.Error(err),
		)
		h.sendPlain(ctx, chatID, msgInternalError)
		return nil
	}
}

// userMessage maps expected errors to the text shown to the user.
func userMessage(err error) (string, bool) {
	var (
		usage         usageError
		notRecognized *service.TaskNotRecognizedError
	)

	switch {
	case errors.As(err, &usage):
		return usage.usage, true
	case errors.As(err, &notRecognized):
		return renderNotRecognized(notRecognized), true
	case errors.Is(err, service.ErrTaskNotRecognized):
		return msgNotRecognized, true
	case errors.Is(err, service.ErrAlreadyCompleted):
		return msgAlreadyCompleted, true
	case errors.Is(err, service.ErrRestAlreadyUsed):
		return msgRestAlreadyUsed, true
	case errors.Is(err, service.ErrInvalidNumericInput):
		return msgInvalidNumber, true
	case errors.Is(err, service.ErrMissingPrerequisiteData):
		return msgMissingWeightData, true
	case errors.Is(err, service.ErrTimerLimit):
		return msgTimerLimit, true
	default:
		return "", false
	}
}
