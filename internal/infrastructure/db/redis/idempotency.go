package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

const (
	// DefaultIdempotencyTTL is how long a completed key replays its order.
	DefaultIdempotencyTTL = 24 * time.Hour

	pendingValue = "pending"
	claimTTL     = time.Minute
)

// IdempotencyStore binds client idempotency keys to created orders.
// Key format: idem:order:<scoped key>. The value is "pending" while the
// create runs and the order id afterwards.
type IdempotencyStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewIdempotencyStore(client redis.UniversalClient, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Claim(ctx context.Context, key string) (string, bool, error) {
	k := s.key(key)
	ok, err := s.client.SetNX(ctx, k, pendingValue, claimTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return "", true, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; try once more.
		ok, err = s.client.SetNX(ctx, k, pendingValue, claimTTL).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency claim: %w", err)
		}
		if ok {
			return "", true, nil
		}
		return "", false, domain.ErrRequestInFlight
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if val == pendingValue {
		return "", false, domain.ErrRequestInFlight
	}
	return val, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, orderID string) error {
	if err := s.client.Set(ctx, s.key(key), orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:order:" + key
}
