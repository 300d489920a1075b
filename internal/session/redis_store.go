package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"booktrack-backend/internal/models"
)

// retention is how long a record outlives its own expiry in Redis.
// Expired and closed sessions must stay readable until the sweep
// removes them, matching the behavior of the relational store.
const retention = 48 * time.Hour

// RedisStore keeps session records as JSON values under a key prefix.
// Validity is derived from the stored expiry, not from the key TTL; the
// TTL only bounds how long dead records linger if no sweep runs.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}

	return &s, nil
}

func (r *RedisStore) Insert(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	ttl := time.Until(s.ExpiresAt) + retention
	return r.client.Set(ctx, r.key(s.Token), data, ttl).Err()
}

func (r *RedisStore) UpdateExpiry(ctx context.Context, token string, newEnd time.Time) error {
	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}

	s.ExpiresAt = newEnd

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	// Concurrent prolongs race here; last writer wins, which is fine
	// because every writer extends from "now".
	ttl := time.Until(newEnd) + retention
	return r.client.Set(ctx, r.key(token), data, ttl).Err()
}

func (r *RedisStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		val, err := r.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return removed, err
		}

		var s models.Session
		if err := json.Unmarshal([]byte(val), &s); err != nil {
			return removed, fmt.Errorf("decode session record: %w", err)
		}

		if s.ExpiresAt.Before(cutoff) {
			n, err := r.client.Del(ctx, key).Result()
			if err != nil {
				return removed, err
			}
			removed += n
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}

	return removed, nil
}
