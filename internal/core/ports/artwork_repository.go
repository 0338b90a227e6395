package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// ArtworkFilter narrows List. Zero fields do not filter.
type ArtworkFilter struct {
	Category domain.Category
	ArtistID string
	LikedBy  string // artworks whose likes set contains this user id
}

// ArtworkRepository defines persistence operations for artworks, including
// the set and sequence mutations on likes and comment references.
type ArtworkRepository interface {
	Create(ctx context.Context, a *domain.Artwork) (*domain.Artwork, error)
	FindByID(ctx context.Context, id string) (*domain.Artwork, error)
	// FindByIDs returns the artworks that resolve; unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Artwork, error)
	// List returns matching artworks, newest first.
	List(ctx context.Context, filter ArtworkFilter) ([]*domain.Artwork, error)
	// FindMostLiked returns the artwork with the largest likes set. Ties go to
	// the newest artwork. Returns ErrArtworkNotFound when there are none.
	FindMostLiked(ctx context.Context) (*domain.Artwork, error)
	// Update replaces the writable fields and returns the updated artwork.
	Update(ctx context.Context, id string, fields domain.ArtworkFields) (*domain.Artwork, error)
	Delete(ctx context.Context, id string) error

	// AddLike inserts userID into the likes set in one conditional write.
	// Returns ErrAlreadyLiked when it was present, ErrArtworkNotFound when the
	// artwork does not exist.
	AddLike(ctx context.Context, id, userID string) (*domain.Artwork, error)
	// RemoveLike removes userID from the likes set in one conditional write.
	// Returns ErrNotLiked when it was absent.
	RemoveLike(ctx context.Context, id, userID string) (*domain.Artwork, error)

	// AttachComment appends a comment reference. ErrArtworkNotFound when the
	// artwork is gone.
	AttachComment(ctx context.Context, id, commentID string) error
	// DetachComment removes a comment reference. Removing an absent
	// reference is not an error.
	DetachComment(ctx context.Context, id, commentID string) error
}
