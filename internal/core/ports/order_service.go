package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// CreateOrderInput carries the order payload. Price is the client's snapshot
// of the artwork price.
type CreateOrderInput struct {
	ArtworkID      string
	Price          float64
	IdempotencyKey string
}

// OrderResult is returned after placing an order.
type OrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the idempotency key matched an earlier order.
	AlreadyExisted bool
	// PriceMismatch is true when the snapshot differs from the listed price.
	PriceMismatch bool
}

// OrderService covers the order aggregate.
type OrderService interface {
	Create(ctx context.Context, callerID string, input CreateOrderInput) (*OrderResult, error)
	TransitionStatus(ctx context.Context, callerID, orderID string, status domain.OrderStatus) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.OrderView, error)
	ListByArtist(ctx context.Context, artistID string) ([]domain.OrderView, error)
}
