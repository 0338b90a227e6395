package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// IdentityStore verifies credentials and resolves roles.
type IdentityStore interface {
	// VerifyCredential returns the user id for a matching identifier/secret
	// pair. Any mismatch is reported as ErrInvalidCredentials.
	VerifyCredential(ctx context.Context, identifier, secret string) (string, error)
	// GetRole returns ErrUserNotFound when userID does not resolve.
	GetRole(ctx context.Context, userID string) (domain.Role, error)
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Role         string
	FirstName    string
	LastName     string
	Bio          string
	ProfileImage string
}

// AuthService covers registration and token issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
