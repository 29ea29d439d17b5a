package session

import (
	"context"
	"sync"
	"time"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

// MemoryStore keeps sessions in a mutex-guarded map. Each store owns its
// sessions; independent instances do not interfere.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	now func() time.Time
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create opens a session for the member and returns its ID.
func (s *MemoryStore) Create(ctx context.Context, memberID string) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        id,
		MemberID:  memberID,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	copied := *session
	return &copied, nil
}

// Get resolves a session ID.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
