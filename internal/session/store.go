package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sessionKey = "tipfit:session"

// Store is the key-value cache for the last-known session: read once at
// startup, written on every change, cleared on logout.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) Save(ctx context.Context, s *Session) error {
	if s == nil {
		return r.Clear(ctx)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey, b, 0).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (r *redisStore) Load(ctx context.Context) (*Session, error) {
	b, err := r.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &s, nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
