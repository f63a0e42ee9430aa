// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guidora/mobile-core/internal/platform/constants"
)

// RedisStore persists the bearer credential in a shared Redis deployment.
//
// # When To Use
//
// Phone installs use [FileStore]. Kiosk installations and end-to-end test
// rigs run several client processes that must observe the same session, so
// they point the store at Redis instead. Semantics match the file store:
// one key, one token, absent key means logged out.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore constructs a [*RedisStore].
//
// # Parameters
//   - client: Connected Redis client (see platform/redis.NewClient).
//   - installID: Distinguishes co-located installs; becomes part of the key.
//   - ttl: Expiry for the stored credential. Zero means no expiry.
func NewRedisStore(client *redis.Client, installID string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    constants.RedisPrefixCredential + installID,
		ttl:    ttl,
	}
}

// Load reads the persisted credential. An absent key yields ("", nil).
func (store *RedisStore) Load(ctx context.Context) (string, error) {
	value, err := store.client.Get(ctx, store.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: redis load credential: %w", err)
	}
	return value, nil
}

// Save persists the credential, replacing any previous value.
func (store *RedisStore) Save(ctx context.Context, credential string) error {
	if err := store.client.Set(ctx, store.key, credential, store.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis save credential: %w", err)
	}
	return nil
}

// Delete removes the credential key. Deleting an absent key is a no-op.
func (store *RedisStore) Delete(ctx context.Context) error {
	if err := store.client.Del(ctx, store.key).Err(); err != nil {
		return fmt.Errorf("session: redis delete credential: %w", err)
	}
	return nil
}
