package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Outbox throttles every outgoing Bot API call through one token bucket,
// keeping the bot under Telegram's global message limit.
type Outbox struct {
	bot     Sender
	limiter *rate.Limiter
}

// NewOutbox creates an Outbox. A non-positive perSecond disables throttling.
func NewOutbox(bot Sender, perSecond float64, burst int) *Outbox {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &Outbox{
		bot:     bot,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Send waits for a token and sends c.
func (o *Outbox) Send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return tgbotapi.Message{}, err
	}
	return o.bot.Send(c)
}

// Request waits for a token and performs a request whose result is not a message,
// such as callback answers and deletions.
func (o *Outbox) Request(ctx context.Context, c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return o.bot.Request(c)
}
