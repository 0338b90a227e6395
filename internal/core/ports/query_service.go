package ports

import (
	"context"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

// GalleryQueryService builds the denormalized read views. It never writes.
type GalleryQueryService interface {
	ListArtworks(ctx context.Context, filter ArtworkFilter) ([]domain.ArtworkView, error)
	GetArtwork(ctx context.Context, id string) (*domain.ArtworkView, error)
	MostLiked(ctx context.Context) (*domain.ArtworkView, error)
	// ExpandArtworks builds views for already loaded artworks, preserving order.
	ExpandArtworks(ctx context.Context, artworks []*domain.Artwork) ([]domain.ArtworkView, error)
	GetUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListArtists(ctx context.Context) ([]*domain.User, error)
}
