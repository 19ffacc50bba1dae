package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgredis "github.com/justocafe/storefront-api/pkg/redis"
)

// RedisStore persists cart snapshots as JSON documents in Redis so sessions
// survive process restarts and are shared across replicas.
type RedisStore struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed store whose sessions expire after ttl.
func NewRedisStore(client *pkgredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]LineItem, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if errors.Is(err, goredis.Nil) {
		return []LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart %s: %w", sessionID, err)
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding cart %s: %w", sessionID, err)
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, items []LineItem) error {
	key := s.client.CartKey(sessionID)
	if len(items) == 0 {
		if err := s.client.Del(ctx, key); err != nil {
			return fmt.Errorf("clearing cart %s: %w", sessionID, err)
		}
		return nil
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart %s: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl); err != nil {
		return fmt.Errorf("saving cart %s: %w", sessionID, err)
	}
	return nil
}
