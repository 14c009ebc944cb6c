// Package redis implements the repository interfaces on Redis. All values
// are stored as JSON blobs with per-key TTLs; the storefront treats Redis as
// a session-scoped key-value store, not a system of record.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// getJSON loads and unmarshals the blob at key into T. A missing key yields
// the provided missing error; kind labels the value in wrapped errors.
func getJSON[T any](ctx context.Context, client *redis.Client, key, kind string, missing error) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, missing
		}
		return nil, fmt.Errorf("redis get %s: %w", kind, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", kind, err)
	}

	return &v, nil
}

// setJSON marshals v and stores it at key with the given TTL (0 = no expiry).
func setJSON(ctx context.Context, client *redis.Client, key, kind string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}

	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", kind, err)
	}

	return nil
}

// deleteKey removes key. Deleting an absent key is not an error.
func deleteKey(ctx context.Context, client *redis.Client, key, kind string) error {
	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", kind, err)
	}

	return nil
}
