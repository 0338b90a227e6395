package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

func TestOwnershipAuthorizer_Rules(t *testing.T) {
	f := newFixture()
	f.users.add("artist", domain.RoleArtist)
	f.users.add("other", domain.RoleArtist)
	f.users.add("buyer", domain.RoleUser)
	f.users.add("stranger", domain.RoleUser)

	artwork := &domain.Artwork{ID: "a1", ArtistID: "artist"}
	comment := &domain.Comment{ID: "c1", ArtworkID: "a1", UserID: "buyer"}
	order := &domain.Order{ID: "o1", ArtworkID: "a1", BuyerID: "buyer"}

	tests := []struct {
		name   string
		caller string
		action ports.Action
		res    ports.Resource
		want   error
	}{
		{"artist creates artwork", "artist", ports.ActionCreateArtwork, ports.Resource{}, nil},
		{"user cannot create artwork", "buyer", ports.ActionCreateArtwork, ports.Resource{}, domain.ErrForbidden},
		{"owner updates", "artist", ports.ActionUpdateArtwork, ports.Resource{Artwork: artwork}, nil},
		{"other artist cannot update", "other", ports.ActionUpdateArtwork, ports.Resource{Artwork: artwork}, domain.ErrForbidden},
		{"other artist cannot delete", "other", ports.ActionDeleteArtwork, ports.Resource{Artwork: artwork}, domain.ErrForbidden},
		{"any identity likes", "stranger", ports.ActionLikeArtwork, ports.Resource{}, nil},
		{"any identity comments", "stranger", ports.ActionCreateComment, ports.Resource{}, nil},
		{"artist orders own work", "artist", ports.ActionCreateOrder, ports.Resource{}, nil},
		{"author deletes comment", "buyer", ports.ActionDeleteComment, ports.Resource{Artwork: artwork, Comment: comment}, nil},
		{"owner deletes comment", "artist", ports.ActionDeleteComment, ports.Resource{Artwork: artwork, Comment: comment}, nil},
		{"stranger cannot delete comment", "stranger", ports.ActionDeleteComment, ports.Resource{Artwork: artwork, Comment: comment}, domain.ErrForbidden},
		{"author deletes comment on missing artwork", "buyer", ports.ActionDeleteComment, ports.Resource{Comment: comment}, nil},
		{"owner completes order", "artist", ports.ActionCompleteOrder, ports.Resource{Artwork: artwork, Order: order}, nil},
		{"buyer cannot complete order", "buyer", ports.ActionCompleteOrder, ports.Resource{Artwork: artwork, Order: order}, domain.ErrForbidden},
		{"buyer cancels order", "buyer", ports.ActionCancelOrder, ports.Resource{Artwork: artwork, Order: order}, nil},
		{"owner cancels order", "artist", ports.ActionCancelOrder, ports.Resource{Artwork: artwork, Order: order}, nil},
		{"stranger cannot cancel order", "stranger", ports.ActionCancelOrder, ports.Resource{Artwork: artwork, Order: order}, domain.ErrForbidden},
		{"unknown action", "artist", ports.Action("artwork.publish"), ports.Resource{}, domain.ErrForbidden},
		{"deleted identity", "ghost", ports.ActionLikeArtwork, ports.Resource{}, domain.ErrUnauthenticated},
		{"empty caller", "", ports.ActionLikeArtwork, ports.Resource{}, domain.ErrUnauthenticated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.authz.AuthorizeMutation(context.Background(), tc.caller, tc.action, tc.res)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestOwnershipAuthorizer_IdentityCheckedBeforeOwnership(t *testing.T) {
	f := newFixture()
	artwork := &domain.Artwork{ID: "a1", ArtistID: "gone"}

	// The caller owns the artwork on paper but no longer exists.
	err := f.authz.AuthorizeMutation(context.Background(), "gone", ports.ActionDeleteArtwork, ports.Resource{Artwork: artwork})
	if err != domain.ErrUnknownIdentity {
		t.Fatalf("expected ErrUnknownIdentity, got %v", err)
	}
}
