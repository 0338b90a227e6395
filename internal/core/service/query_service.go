package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// QueryService builds the read views. References are joined in the
// application with one batched lookup per collection, never one read per
// reference.
type QueryService struct {
	artworks ports.ArtworkRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewQueryService(
	artworks ports.ArtworkRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *QueryService {
	return &QueryService{artworks: artworks, comments: comments, users: users, log: log}
}

func (s *QueryService) ListArtworks(ctx context.Context, filter ports.ArtworkFilter) ([]domain.ArtworkView, error) {
	list, err := s.artworks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	return s.ExpandArtworks(ctx, list)
}

func (s *QueryService) GetArtwork(ctx context.Context, id string) (*domain.ArtworkView, error) {
	artwork, err := s.artworks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expandOne(ctx, artwork)
}

func (s *QueryService) MostLiked(ctx context.Context) (*domain.ArtworkView, error) {
	artwork, err := s.artworks.FindMostLiked(ctx)
	if err != nil {
		return nil, err
	}
	return s.expandOne(ctx, artwork)
}

func (s *QueryService) ExpandArtworks(ctx context.Context, artworks []*domain.Artwork) ([]domain.ArtworkView, error) {
	views := make([]domain.ArtworkView, 0, len(artworks))
	if len(artworks) == 0 {
		return views, nil
	}

	var commentIDs []string
	for _, a := range artworks {
		commentIDs = append(commentIDs, a.Comments...)
	}
	comments, err := s.comments.FindByIDs(ctx, uniqueIDs(commentIDs))
	if err != nil {
		return nil, fmt.Errorf("expand artworks: load comments: %w", err)
	}
	commentByID := make(map[string]*domain.Comment, len(comments))
	for _, c := range comments {
		commentByID[c.ID] = c
	}

	userIDs := make([]string, 0, len(artworks)+len(comments))
	for _, a := range artworks {
		userIDs = append(userIDs, a.ArtistID)
	}
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.users.FindByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return nil, fmt.Errorf("expand artworks: load users: %w", err)
	}
	userByID := indexUsers(users)

	for _, a := range artworks {
		views = append(views, buildArtworkView(a, commentByID, userByID))
	}
	return views, nil
}

func (s *QueryService) GetUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &domain.UserProfile{User: user, Artworks: []domain.ArtworkView{}}
	if user.Role != domain.RoleArtist {
		return profile, nil
	}

	profile.Artworks, err = s.ListArtworks(ctx, ports.ArtworkFilter{ArtistID: userID})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *QueryService) ListArtists(ctx context.Context) ([]*domain.User, error) {
	artists, err := s.users.ListByRole(ctx, domain.RoleArtist)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (s *QueryService) expandOne(ctx context.Context, a *domain.Artwork) (*domain.ArtworkView, error) {
	views, err := s.ExpandArtworks(ctx, []*domain.Artwork{a})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func buildArtworkView(a *domain.Artwork, comments map[string]*domain.Comment, users map[string]*domain.User) domain.ArtworkView {
	view := domain.ArtworkView{
		ID:          a.ID,
		Artist:      users[a.ArtistID].Summary(),
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
		Price:       a.Price,
		Category:    a.Category,
		Likes:       a.Likes,
		Comments:    make([]domain.CommentView, 0, len(a.Comments)),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if view.Likes == nil {
		view.Likes = []string{}
	}
	for _, id := range a.Comments {
		c, ok := comments[id]
		if !ok {
			continue
		}
		view.Comments = append(view.Comments, domain.CommentView{
			ID:        c.ID,
			Text:      c.Text,
			Timestamp: c.Timestamp,
			User:      users[c.UserID].Summary(),
		})
	}
	return view
}

func indexUsers(users []*domain.User) map[string]*domain.User {
	m := make(map[string]*domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
