package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// ArtworkInput is the artwork payload as received from the transport.
type ArtworkInput struct {
	Title       string
	Description string
	Price       string
	Category    string
	Image       string // existing image reference; ignored when an upload is present
}

// ArtworkService covers the artwork aggregate mutations.
type ArtworkService interface {
	Create(ctx context.Context, callerID string, input ArtworkInput, image *ImageUpload) (*domain.Artwork, error)
	Update(ctx context.Context, callerID, artworkID string, input ArtworkInput, image *ImageUpload) (*domain.Artwork, error)
	Delete(ctx context.Context, callerID, artworkID string) error
	Like(ctx context.Context, callerID, artworkID string) (*domain.Artwork, error)
	Unlike(ctx context.Context, callerID, artworkID string) (*domain.Artwork, error)
}
