// Package memory holds the single-process conversation state: intake
// sessions and pending verification challenges. A restart loses both,
// which is acceptable — the user simply restarts the flow.
package memory

import (
	"sync"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// SessionStore is a mutex-guarded map of chat ID to Session. A janitor
// goroutine drops sessions not touched within the idle TTL, so abandoned
// flows do not accumulate.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*domain.Session
	idleTTL  time.Duration
	stop     chan struct{}
}

// NewSessionStore creates a store expiring sessions idle longer than
// idleTTL. A non-positive TTL disables expiry.
func NewSessionStore(idleTTL time.Duration) *SessionStore {
	s := &SessionStore{
		sessions: make(map[int64]*domain.Session),
		idleTTL:  idleTTL,
		stop:     make(chan struct{}),
	}
	if idleTTL > 0 {
		go s.janitor()
	}
	return s
}

// Get returns the session for chatID, if any.
func (s *SessionStore) Get(chatID int64) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Put stores the session and refreshes its idle clock.
func (s *SessionStore) Put(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Touch under the lock: the janitor reads UpdatedAt on the same
	// pointer.
	sess.Touch()
	s.sessions[sess.ChatID] = sess
}

// Delete removes the session for chatID. Removing a missing session is a
// no-op.
func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Close stops the janitor goroutine.
func (s *SessionStore) Close() {
	close(s.stop)
}

func (s *SessionStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-s.idleTTL)
			s.mu.Lock()
			for chatID, sess := range s.sessions {
				if sess.UpdatedAt.Before(cutoff) {
					delete(s.sessions, chatID)
				}
			}
			s.mu.Unlock()
		}
	}
}
