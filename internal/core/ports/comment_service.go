package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// DetachJob is a pending Artwork.Comments cleanup left behind when a comment
// record was removed but its back-reference could not be.
type DetachJob struct {
	ArtworkID string
	CommentID string
	Attempt   int
}

// CommentService covers comment creation and two-sided deletion.
type CommentService interface {
	Add(ctx context.Context, callerID, artworkID, text string) (*domain.Comment, error)
	Delete(ctx context.Context, callerID, artworkID, commentID string) error
}

// DetachQueue accepts cleanup jobs for asynchronous retry.
type DetachQueue interface {
	Enqueue(job DetachJob) error
}
