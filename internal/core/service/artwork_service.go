package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// uploadPending stands in for the image reference while validating a draft
// whose image has not been stored yet.
const uploadPending = "upload:pending"

// ErrForeignImage rejects an image reference other than the artwork's own.
// Only uploads stored through this service become artwork images.
var ErrForeignImage = domain.Validation("image", "image must be uploaded or match the current image")

type ArtworkService struct {
	artworks ports.ArtworkRepository
	comments ports.CommentRepository
	orders   ports.OrderRepository
	images   ports.ImageStore
	authz    ports.Authorizer
	log      zerolog.Logger
}

func NewArtworkService(
	artworks ports.ArtworkRepository,
	comments ports.CommentRepository,
	orders ports.OrderRepository,
	images ports.ImageStore,
	authz ports.Authorizer,
	log zerolog.Logger,
) *ArtworkService {
	return &ArtworkService{
		artworks: artworks,
		comments: comments,
		orders:   orders,
		images:   images,
		authz:    authz,
		log:      log,
	}
}

// Create publishes a new artwork owned by the caller. The image upload is
// required and is only stored once every other field has validated.
func (s *ArtworkService) Create(ctx context.Context, callerID string, in ports.ArtworkInput, upload *ports.ImageUpload) (*domain.Artwork, error) {
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionCreateArtwork, ports.Resource{}); err != nil {
		return nil, err
	}

	draft := toDraft(in)
	draft.Image = ""
	if upload != nil {
		draft.Image = uploadPending
	}
	fields, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	ref, err := s.images.Save(ctx, upload)
	if err != nil {
		return nil, err
	}
	fields.Image = ref

	now := time.Now().UTC()
	artwork := &domain.Artwork{
		ArtistID:    callerID,
		Title:       fields.Title,
		Description: fields.Description,
		Image:       fields.Image,
		Price:       fields.Price,
		Category:    fields.Category,
		Likes:       []string{},
		Comments:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.artworks.Create(ctx, artwork)
	if err != nil {
		s.discardImage(ctx, ref)
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	s.log.Info().
		Str("artwork_id", created.ID).
		Str("artist_id", callerID).
		Str("category", string(created.Category)).
		Msg("artwork created")
	return created, nil
}

// Update applies a full edit of the writable fields. The effective image is
// the new upload, else the current one; a reference sent with the request
// must name the current image. Category keeps its value when omitted. Title,
// description and price must always be supplied.
func (s *ArtworkService) Update(ctx context.Context, callerID, artworkID string, in ports.ArtworkInput, upload *ports.ImageUpload) (*domain.Artwork, error) {
	if _, err := s.authz.ResolveCaller(ctx, callerID); err != nil {
		return nil, err
	}
	current, err := s.artworks.FindByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionUpdateArtwork, ports.Resource{Artwork: current}); err != nil {
		return nil, err
	}

	draft := toDraft(in)
	if draft.Category == "" {
		draft.Category = string(current.Category)
	}
	switch {
	case upload != nil:
		draft.Image = uploadPending
	case draft.Image == "" || draft.Image == current.Image:
		draft.Image = current.Image
	default:
		return nil, ErrForeignImage
	}
	fields, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	if upload != nil {
		ref, err := s.images.Save(ctx, upload)
		if err != nil {
			return nil, err
		}
		fields.Image = ref
	}

	updated, err := s.artworks.Update(ctx, artworkID, fields)
	if err != nil {
		if upload != nil {
			s.discardImage(ctx, fields.Image)
		}
		return nil, err
	}

	if upload != nil && current.Image != updated.Image {
		s.discardImage(ctx, current.Image)
	}

	s.log.Info().Str("artwork_id", artworkID).Str("artist_id", callerID).Msg("artwork updated")
	return updated, nil
}

// Delete removes an artwork that no order references. Its comments are
// removed with it; leftovers are logged, not reported to the caller.
func (s *ArtworkService) Delete(ctx context.Context, callerID, artworkID string) error {
	if _, err := s.authz.ResolveCaller(ctx, callerID); err != nil {
		return err
	}
	artwork, err := s.artworks.FindByID(ctx, artworkID)
	if err != nil {
		return err
	}
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionDeleteArtwork, ports.Resource{Artwork: artwork}); err != nil {
		return err
	}

	referenced, err := s.orders.ExistsForArtwork(ctx, artworkID)
	if err != nil {
		return fmt.Errorf("delete artwork: check orders: %w", err)
	}
	if referenced {
		return domain.ErrArtworkHasOrders
	}

	if err := s.artworks.Delete(ctx, artworkID); err != nil {
		return err
	}

	removed, err := s.comments.DeleteByArtwork(ctx, artworkID)
	if err != nil {
		s.log.Warn().Err(err).Str("artwork_id", artworkID).Msg("failed to delete comments of removed artwork")
	}
	s.discardImage(ctx, artwork.Image)

	s.log.Info().
		Str("artwork_id", artworkID).
		Str("artist_id", callerID).
		Int64("comments_removed", removed).
		Msg("artwork deleted")
	return nil
}

// Like adds the caller to the likes set. The set union is a single
// conditional write in the repository, so concurrent likers never lose
// each other's updates.
func (s *ArtworkService) Like(ctx context.Context, callerID, artworkID string) (*domain.Artwork, error) {
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionLikeArtwork, ports.Resource{}); err != nil {
		return nil, err
	}
	artwork, err := s.artworks.AddLike(ctx, artworkID, callerID)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("artwork_id", artworkID).Str("user_id", callerID).Int("likes", len(artwork.Likes)).Msg("artwork liked")
	return artwork, nil
}

func (s *ArtworkService) Unlike(ctx context.Context, callerID, artworkID string) (*domain.Artwork, error) {
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionLikeArtwork, ports.Resource{}); err != nil {
		return nil, err
	}
	artwork, err := s.artworks.RemoveLike(ctx, artworkID, callerID)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("artwork_id", artworkID).Str("user_id", callerID).Int("likes", len(artwork.Likes)).Msg("artwork unliked")
	return artwork, nil
}

func (s *ArtworkService) discardImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		s.log.Warn().Err(err).Str("image", ref).Msg("failed to remove stored image")
	}
}

func toDraft(in ports.ArtworkInput) domain.ArtworkDraft {
	return domain.ArtworkDraft{
		Title:       cleanText(in.Title),
		Description: cleanText(in.Description),
		Image:       in.Image,
		Price:       in.Price,
		Category:    in.Category,
	}
}
