package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// Action names a mutating operation subject to authorization.
type Action string

const (
	ActionCreateArtwork Action = "artwork.create"
	ActionUpdateArtwork Action = "artwork.update"
	ActionDeleteArtwork Action = "artwork.delete"
	ActionLikeArtwork   Action = "artwork.like"
	ActionCreateComment Action = "comment.create"
	ActionDeleteComment Action = "comment.delete"
	ActionCreateOrder   Action = "order.create"
	ActionCompleteOrder Action = "order.complete"
	ActionCancelOrder   Action = "order.cancel"
)

// Resource is the target of a mutation. Only the fields relevant to the
// action need to be set.
type Resource struct {
	Artwork *domain.Artwork
	Comment *domain.Comment
	Order   *domain.Order
}

// Authorizer decides whether a caller may perform an action. A nil error
// allows it; otherwise the error is Unauthenticated or Forbidden.
type Authorizer interface {
	// ResolveCaller checks that the caller still exists and returns its role.
	ResolveCaller(ctx context.Context, callerID string) (domain.Role, error)
	AuthorizeMutation(ctx context.Context, callerID string, action Action, res Resource) error
}
