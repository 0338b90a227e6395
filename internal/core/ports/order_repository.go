package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error)
	ListByArtworks(ctx context.Context, artworkIDs []string) ([]*domain.Order, error)
	ExistsForArtwork(ctx context.Context, artworkID string) (bool, error)
	// UpdateStatus moves the order from one status to another only if it is
	// still in from. Returns ErrInvalidTransition when it is not.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error)
}
