package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// CommentService keeps comment records and the Artwork.Comments references
// in step. There is no multi-document transaction: a failed attach is undone
// by deleting the new record, and a failed detach is handed to the detach
// queue for retry.
type CommentService struct {
	comments ports.CommentRepository
	artworks ports.ArtworkRepository
	authz    ports.Authorizer
	detach   ports.DetachQueue
	log      zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	artworks ports.ArtworkRepository,
	authz ports.Authorizer,
	detach ports.DetachQueue,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		artworks: artworks,
		authz:    authz,
		detach:   detach,
		log:      log,
	}
}

func (s *CommentService) Add(ctx context.Context, callerID, artworkID, text string) (*domain.Comment, error) {
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionCreateComment, ports.Resource{}); err != nil {
		return nil, err
	}

	text, err := domain.ValidateCommentText(cleanText(text))
	if err != nil {
		return nil, err
	}

	if _, err := s.artworks.FindByID(ctx, artworkID); err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		ArtworkID: artworkID,
		UserID:    callerID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.artworks.AttachComment(ctx, artworkID, comment.ID); err != nil {
		if delErr := s.comments.Delete(ctx, comment.ID); delErr != nil && !errors.Is(delErr, domain.ErrNotFound) {
			s.log.Error().Err(delErr).Str("comment_id", comment.ID).Msg("failed to roll back unattached comment")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrArtworkNotFound
		}
		return nil, fmt.Errorf("attach comment: %w", err)
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("artwork_id", artworkID).
		Str("user_id", callerID).
		Msg("comment added")
	return comment, nil
}

// Delete removes the comment record first and then its reference on the
// artwork. Once the record is gone the operation has succeeded; a failed
// detach is queued for reconciliation.
func (s *CommentService) Delete(ctx context.Context, callerID, artworkID, commentID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.ArtworkID != artworkID {
		return domain.ErrCommentNotFound
	}

	// The parent may already be gone; the author can still clean up.
	artwork, err := s.artworks.FindByID(ctx, artworkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	res := ports.Resource{Artwork: artwork, Comment: comment}
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionDeleteComment, res); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	if artwork != nil {
		if err := s.artworks.DetachComment(ctx, artworkID, commentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().
				Err(err).
				Str("artwork_id", artworkID).
				Str("comment_id", commentID).
				Msg("comment removed but reference detach failed, queued for retry")
			s.enqueueDetach(artworkID, commentID)
		}
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("artwork_id", artworkID).
		Str("user_id", callerID).
		Msg("comment deleted")
	return nil
}

func (s *CommentService) enqueueDetach(artworkID, commentID string) {
	if s.detach == nil {
		return
	}
	job := ports.DetachJob{ArtworkID: artworkID, CommentID: commentID, Attempt: 1}
	if err := s.detach.Enqueue(job); err != nil {
		s.log.Error().
			Err(err).
			Str("artwork_id", artworkID).
			Str("comment_id", commentID).
			Msg("failed to queue reference detach")
	}
}
