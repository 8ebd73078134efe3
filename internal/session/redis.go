package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyageplan/trip-planner/internal/model"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with a TTL so abandoned sessions age
// out without the core ever deciding when a session ends.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get loads and decodes the state for id.
func (s *RedisStore) Get(ctx context.Context, id string) (model.DialogState, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return model.DialogState{}, false, nil
	}
	if err != nil {
		return model.DialogState{}, false, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var state model.DialogState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.DialogState{}, false, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return state, true, nil
}

// Put encodes and stores the state, refreshing the TTL.
func (s *RedisStore) Put(ctx context.Context, id string, state model.DialogState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", id, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
