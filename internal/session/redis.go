package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared between instances. Redis expiry is a backstop only; the expiry
// check stays with the caller so both backends behave the same.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	s := Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: failed to marshal: %w", err)
	}

	// Keep zero-TTL sessions findable for a moment so the lazy expiry
	// check can purge them the same way the memory store does.
	expire := ttl
	if expire <= 0 {
		expire = time.Second
	}

	if err := r.client.Set(ctx, r.key(s.SessionID), data, expire).Err(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
