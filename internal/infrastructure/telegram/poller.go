package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hobbs-it/helpdesk-bot/internal/application/intake"
)

// Poller long-polls Telegram for updates and feeds them to the engine one
// at a time. Sequential processing preserves per-chat event ordering, which
// the engine relies on instead of locks.
type Poller struct {
	bot     *Bot
	engine  *intake.Engine
	limiter *ChatLimiter
}

func NewPoller(bot *Bot, engine *intake.Engine, limiter *ChatLimiter) *Poller {
	return &Poller{bot: bot, engine: engine, limiter: limiter}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := p.bot.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			p.bot.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			chatID := update.Message.Chat.ID
			if !p.limiter.Allow(chatID) {
				slog.Warn("rate limit exceeded, dropping update", "chat_id", chatID)
				continue
			}
			p.handle(ctx, update.Message)
		}
	}
}

// handle never lets one bad update take the poller down.
func (p *Poller) handle(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while handling update", "chat_id", msg.Chat.ID, "panic", r)
		}
	}()
	p.engine.HandleEvent(ctx, parseEvent(msg))
}
