package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier resolves a login identifier, matched case-insensitively
	// against email or exactly against username.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	// FindByIDs returns the users that resolve; unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
