package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// OwnershipAuthorizer applies the marketplace mutation rules. The caller's
// identity is always resolved against the identity store first, so a token
// for a deleted user is rejected as unauthenticated before any ownership or
// role check runs.
type OwnershipAuthorizer struct {
	identity ports.IdentityStore
	log      zerolog.Logger
}

func NewOwnershipAuthorizer(identity ports.IdentityStore, log zerolog.Logger) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{identity: identity, log: log}
}

func (a *OwnershipAuthorizer) ResolveCaller(ctx context.Context, callerID string) (domain.Role, error) {
	if callerID == "" {
		return "", domain.ErrUnknownIdentity
	}
	role, err := a.identity.GetRole(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnknownIdentity
		}
		return "", fmt.Errorf("resolve caller: %w", err)
	}
	return role, nil
}

func (a *OwnershipAuthorizer) AuthorizeMutation(ctx context.Context, callerID string, action ports.Action, res ports.Resource) error {
	role, err := a.ResolveCaller(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownIdentity) {
			return err
		}
		return fmt.Errorf("authorize %s: %w", action, err)
	}

	if err := decide(callerID, role, action, res); err != nil {
		a.log.Debug().
			Str("caller_id", callerID).
			Str("action", string(action)).
			Str("reason", err.Error()).
			Msg("mutation denied")
		return err
	}
	return nil
}

func decide(callerID string, role domain.Role, action ports.Action, res ports.Resource) error {
	switch action {
	case ports.ActionCreateArtwork:
		if role != domain.RoleArtist {
			return domain.Forbidden("only artists can publish artworks")
		}
		return nil

	case ports.ActionUpdateArtwork, ports.ActionDeleteArtwork:
		if !ownsArtwork(callerID, res.Artwork) {
			return domain.Forbidden("you do not own this artwork")
		}
		return nil

	case ports.ActionLikeArtwork, ports.ActionCreateComment, ports.ActionCreateOrder:
		return nil

	case ports.ActionDeleteComment:
		if res.Comment != nil && res.Comment.UserID == callerID {
			return nil
		}
		if ownsArtwork(callerID, res.Artwork) {
			return nil
		}
		return domain.Forbidden("only the comment author or the artwork owner can delete this comment")

	case ports.ActionCompleteOrder:
		if !ownsArtwork(callerID, res.Artwork) {
			return domain.Forbidden("only the artist can complete this order")
		}
		return nil

	case ports.ActionCancelOrder:
		if res.Order != nil && res.Order.BuyerID == callerID {
			return nil
		}
		if ownsArtwork(callerID, res.Artwork) {
			return nil
		}
		return domain.Forbidden("only the buyer or the artist can cancel this order")
	}

	return domain.Forbidden(fmt.Sprintf("action %q is not permitted", action))
}

func ownsArtwork(callerID string, a *domain.Artwork) bool {
	return a != nil && a.ArtistID != "" && a.ArtistID == callerID
}
