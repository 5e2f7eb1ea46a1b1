package telegram

import (
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/pkg/ratelimit"
	"golang.org/x/time/rate"
)

// ChatLimiter throttles inbound updates per chat, keeping a flooding chat
// from starving the poller.
type ChatLimiter struct {
	keyed *ratelimit.Keyed[int64]
}

// NewChatLimiter allows r events/second per chat, burst up to burst events.
func NewChatLimiter(r rate.Limit, burst int) *ChatLimiter {
	return &ChatLimiter{keyed: ratelimit.NewKeyed[int64](r, burst, 10*time.Minute)}
}

// Allow reports whether the chat may emit another event right now.
func (cl *ChatLimiter) Allow(chatID int64) bool {
	return cl.keyed.Allow(chatID)
}

// Close stops the limiter's eviction goroutine.
func (cl *ChatLimiter) Close() {
	cl.keyed.Close()
}
