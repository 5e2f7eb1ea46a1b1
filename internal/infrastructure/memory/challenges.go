package memory

import (
	"sync"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// ChallengeStore keeps pending verification challenges, one per chat.
type ChallengeStore struct {
	mu         sync.Mutex
	challenges map[int64]*domain.Challenge
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{challenges: make(map[int64]*domain.Challenge)}
}

// Put stores the challenge, superseding any prior one for the same chat.
func (s *ChallengeStore) Put(ch *domain.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[ch.ChatID] = ch
}

// Get returns the pending challenge for chatID, if any.
func (s *ChallengeStore) Get(chatID int64) (*domain.Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[chatID]
	return ch, ok
}

// Delete removes the pending challenge for chatID.
func (s *ChallengeStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, chatID)
}
