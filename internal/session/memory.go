package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in a process-local map. It is the default
// backend; state is lost on restart, which only forces a re-login.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	s := Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	m.mu.Lock()
	m.sessions[s.SessionID] = s
	m.mu.Unlock()

	return &s, nil
}

func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}
