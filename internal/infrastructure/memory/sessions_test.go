package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	s := NewSessionStore(0)
	_, ok := s.Get(7)
	assert.False(t, ok)

	sess := domain.NewSession(7, domain.StateAwaitingEmail, domain.IntentLogin)
	s.Put(sess)

	got, ok := s.Get(7)
	require.True(t, ok)
	assert.Equal(t, domain.StateAwaitingEmail, got.State)

	s.Delete(7)
	_, ok = s.Get(7)
	assert.False(t, ok)
}

func TestSessionStore_DeleteMissingIsNoop(t *testing.T) {
	s := NewSessionStore(0)
	s.Delete(42) // must not panic
}

func TestSessionStore_PutTouchesIdleClock(t *testing.T) {
	s := NewSessionStore(0)
	sess := domain.NewSession(1, domain.StateAwaitingSummary, domain.IntentTicket)
	sess.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	s.Put(sess)

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), got.UpdatedAt, time.Minute)
}

// Re-putting the same session from concurrent goroutines must be safe:
// Put mutates UpdatedAt on a pointer the janitor also reads. Run with
// -race to catch regressions.
func TestSessionStore_ConcurrentPut(t *testing.T) {
	s := NewSessionStore(time.Millisecond)
	defer s.Close()

	sess := domain.NewSession(9, domain.StateAwaitingPhone, domain.IntentTicket)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.Put(sess)
				s.Get(9)
			}
		}()
	}
	wg.Wait()
}

func TestChallengeStore_Supersede(t *testing.T) {
	s := NewChallengeStore()
	s.Put(&domain.Challenge{ChatID: 3, Code: 111111})
	s.Put(&domain.Challenge{ChatID: 3, Code: 222222})

	ch, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, 222222, ch.Code)

	s.Delete(3)
	_, ok = s.Get(3)
	assert.False(t, ok)
}
