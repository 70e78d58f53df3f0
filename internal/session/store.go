// Package session provides in-memory per-user dialog state.
package session

import (
	"sync"

	"github.com/dkotenko/shopbot/internal/domain"
)

// Store maps a chat ID to its active dialog session. Sessions are ephemeral:
// they live only for the duration of one dialog and do not survive restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*domain.Session),
	}
}

// Get returns the active session for a chat, or nil when none exists.
func (s *Store) Get(chatID int64) *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[chatID]
}

// Put stores the session for a chat, replacing any existing one.
func (s *Store) Put(chatID int64, sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = sess
}

// Delete removes the session for a chat. Deleting a chat with no session is
// a no-op.
func (s *Store) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
