package usecase

import (
	"sync"

	"github.com/pantry-lab/pantrybot/pkg/domain/model"
)

// sessionStore keeps per-user sessions with get-or-create semantics.
// Acquire serializes handling per user, so events of one user are applied
// in order while different users proceed independently.
type sessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *model.Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		entries: make(map[string]*sessionEntry),
	}
}

// Acquire returns the user's session with its lock held. The caller must
// call the release function when done.
func (s *sessionStore) Acquire(userID string) (*model.Session, func()) {
	s.mu.Lock()
	entry, ok := s.entries[userID]
	if !ok {
		entry = &sessionEntry{session: model.NewSession()}
		s.entries[userID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	return entry.session, entry.mu.Unlock
}
