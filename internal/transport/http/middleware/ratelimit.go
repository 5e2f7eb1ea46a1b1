package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/pkg/ratelimit"
	"golang.org/x/time/rate"
)

// RateLimiter throttles the public ops endpoints per remote IP, backed by
// the same keyed limiter the chat transport uses per chat.
type RateLimiter struct {
	keyed *ratelimit.Keyed[string]
}

func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{keyed: ratelimit.NewKeyed[string](r, burst, 10*time.Minute)}
}

// Limit rejects requests over the per-IP budget with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.keyed.Allow(ip) {
			http.Error(w, `{"error":"too many requests"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
