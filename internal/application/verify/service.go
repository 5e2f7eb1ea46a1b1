// Package verify issues and checks email-verification codes.
package verify

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// ChallengeStore is the persistence the service needs. Single-process and
// in-memory in production; faked in tests.
type ChallengeStore interface {
	Put(ch *domain.Challenge)
	Get(chatID int64) (*domain.Challenge, bool)
	Delete(chatID int64)
}

// Service generates verification codes and checks candidates against them.
// Codes are uniform in [100000, 999999] — six digits, never zero-padded.
// Cryptographic strength is not required (single use, delivered over email
// the user already controls) but crypto/rand costs nothing here.
type Service struct {
	store ChallengeStore
	ttl   time.Duration
}

// NewService creates a Service. A non-positive ttl disables expiry.
func NewService(store ChallengeStore, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

// Issue generates a fresh code for chatID and stores it, superseding any
// pending challenge for the same chat.
func (s *Service) Issue(chatID int64, email string) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	code := int(n.Int64()) + 100000
	s.store.Put(&domain.Challenge{
		ChatID:   chatID,
		Code:     code,
		Email:    email,
		IssuedAt: time.Now().UTC(),
	})
	return code, nil
}

// Check parses candidate as an integer and compares it to the pending
// challenge. It never deletes the challenge — mismatches keep it so the
// user may retry, and the caller drops it on success. Expired challenges
// never match.
func (s *Service) Check(chatID int64, candidate string) (*domain.Challenge, bool) {
	ch, ok := s.store.Get(chatID)
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && time.Since(ch.IssuedAt) > s.ttl {
		return nil, false
	}
	entered, err := strconv.Atoi(strings.TrimSpace(candidate))
	if err != nil {
		return nil, false
	}
	if entered != ch.Code {
		return nil, false
	}
	return ch, true
}

// Drop removes any pending challenge for chatID.
func (s *Service) Drop(chatID int64) {
	s.store.Delete(chatID)
}
