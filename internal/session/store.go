package session

import (
	"context"
	"time"
)

// Session binds an opaque token to a user id and an expiry time.
// It intentionally stores only identity pointers, not auth state.
type Session struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session's expiry time has passed. Callers
// must treat an expired session as absent and delete it on sight.
func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) when no session matches; expiry is the caller's concern.
type Store interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
