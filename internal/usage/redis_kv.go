package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyLocalValue = "local:%s:%s"

	// anonymous local storage is dropped after this long without a write
	LocalStorageTTL = 30 * 24 * time.Hour
)

// implements KV in Redis, namespaced to one anonymous session
type RedisKV struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

// creates a Redis-backed key/value view for one session
func NewRedisKV(client *redis.Client, sessionID string) *RedisKV {
	return &RedisKV{
		client:    client,
		sessionID: sessionID,
		ttl:       LocalStorageTTL,
	}
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := kv.client.Get(ctx, fmt.Sprintf(keyLocalValue, kv.sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to get %q from redis: %w", key, err)
	}

	return value, true, nil
}

func (kv *RedisKV) Set(ctx context.Context, key, value string) error {
	err := kv.client.Set(ctx, fmt.Sprintf(keyLocalValue, kv.sessionID, key), value, kv.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set %q in redis: %w", key, err)
	}

	return nil
}

// anonymous local storage kept in Redis, keyed by client-held session ids
type RedisLocal struct {
	client *redis.Client
}

func NewRedisLocal(client *redis.Client) *RedisLocal {
	return &RedisLocal{client: client}
}

// returns a local storage source for the usage resolver
func (l *RedisLocal) Source() LocalSource {
	return func(_ context.Context, sessionID string) (KV, error) {
		return NewRedisKV(l.client, sessionID), nil
	}
}

// keeps any well-formed session id; values expire on their own
func (l *RedisLocal) Ensure(_ context.Context, sessionID string) (string, error) {
	if _, err := uuid.Parse(sessionID); err == nil {
		return sessionID, nil
	}

	return uuid.NewString(), nil
}
