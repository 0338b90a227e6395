package ports

import "context"

// IdempotencyStore remembers which order a client idempotency key produced.
type IdempotencyStore interface {
	// Claim reserves key. When it was already completed, the stored order id
	// is returned with claimed=false. When it is reserved but not completed,
	// ErrRequestInFlight is returned.
	Claim(ctx context.Context, key string) (orderID string, claimed bool, err error)
	// Complete binds a claimed key to the created order.
	Complete(ctx context.Context, key, orderID string) error
	// Release drops a claim after a failed create so the client can retry.
	Release(ctx context.Context, key string) error
}
