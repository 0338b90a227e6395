package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// FindByIDs returns the comments that resolve; unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	// DeleteByArtwork removes every comment of an artwork and reports how many
	// were removed.
	DeleteByArtwork(ctx context.Context, artworkID string) (int64, error)
}
