package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// Store hands out per-session histories keyed by session ID.
// It replaces the process-wide shared history: concurrent requests for
// different sessions never touch the same History.
//
// Store is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*History
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*History)}
}

// Get returns the History for sessionID, creating it on first use.
// An empty sessionID mints a new session; the returned ID identifies it.
func (s *Store) Get(sessionID string) (string, *History) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	h, ok := s.sessions[sessionID]
	if !ok {
		h = &History{}
		s.sessions[sessionID] = h
	}
	return sessionID, h
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Delete discards a session's history.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
