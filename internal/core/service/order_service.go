package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

type OrderService struct {
	orders   ports.OrderRepository
	artworks ports.ArtworkRepository
	users    ports.UserRepository
	views    ports.GalleryQueryService
	idem     ports.IdempotencyStore
	authz    ports.Authorizer
	log      zerolog.Logger
}

// NewOrderService wires the order aggregate. idem may be nil, in which case
// idempotency keys are ignored.
func NewOrderService(
	orders ports.OrderRepository,
	artworks ports.ArtworkRepository,
	users ports.UserRepository,
	views ports.GalleryQueryService,
	idem ports.IdempotencyStore,
	authz ports.Authorizer,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		artworks: artworks,
		users:    users,
		views:    views,
		idem:     idem,
		authz:    authz,
		log:      log,
	}
}

func (s *OrderService) Create(ctx context.Context, callerID string, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	if err := s.authz.AuthorizeMutation(ctx, callerID, ports.ActionCreateOrder, ports.Resource{}); err != nil {
		return nil, err
	}
	if in.ArtworkID == "" {
		return nil, domain.Validation("artworkId", "artworkId is required")
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price <= 0 {
		return nil, domain.Validation("price", "price must be greater than 0")
	}

	var key string
	if in.IdempotencyKey != "" && s.idem != nil {
		// Keys are scoped per buyer so two clients cannot collide.
		key = callerID + ":" + in.IdempotencyKey
		existingID, claimed, err := s.idem.Claim(ctx, key)
		if err != nil {
			return nil, err
		}
		if !claimed {
			order, err := s.orders.FindByID(ctx, existingID)
			if err != nil {
				return nil, fmt.Errorf("replay order %s: %w", existingID, err)
			}
			s.log.Info().Str("order_id", order.ID).Str("buyer_id", callerID).Msg("idempotent order replay")
			return &ports.OrderResult{Order: order, AlreadyExisted: true}, nil
		}
	}

	result, err := s.place(ctx, callerID, in)
	if err != nil {
		s.release(ctx, key)
		return nil, err
	}

	if key != "" {
		if err := s.idem.Complete(ctx, key, result.Order.ID); err != nil {
			s.log.Warn().Err(err).Str("order_id", result.Order.ID).Msg("failed to record idempotency key")
		}
	}
	return result, nil
}

func (s *OrderService) place(ctx context.Context, callerID string, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	artwork, err := s.artworks.FindByID(ctx, in.ArtworkID)
	if err != nil {
		return nil, err
	}

	mismatch := artwork.Price != in.Price
	if mismatch {
		s.log.Warn().
			Str("artwork_id", artwork.ID).
			Float64("listed_price", artwork.Price).
			Float64("order_price", in.Price).
			Msg("order price differs from listed price")
	}

	now := time.Now().UTC()
	order, err := s.orders.Create(ctx, &domain.Order{
		ArtworkID: artwork.ID,
		BuyerID:   callerID,
		Price:     in.Price,
		Status:    domain.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info().
		Str("order_id", order.ID).
		Str("artwork_id", order.ArtworkID).
		Str("buyer_id", callerID).
		Msg("order placed")
	return &ports.OrderResult{Order: order, PriceMismatch: mismatch}, nil
}

func (s *OrderService) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idem.Release(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

// TransitionStatus moves an order along pending -> completed|cancelled.
// Only the artist can complete; the buyer or the artist can cancel.
func (s *OrderService) TransitionStatus(ctx context.Context, callerID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Validation("status", "status must be one of: pending, completed, cancelled")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	artwork, err := s.artworks.FindByID(ctx, order.ArtworkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	action := ports.ActionCancelOrder
	if status == domain.OrderCompleted {
		action = ports.ActionCompleteOrder
	}
	res := ports.Resource{Artwork: artwork, Order: order}
	if err := s.authz.AuthorizeMutation(ctx, callerID, action, res); err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Str("caller_id", callerID).
		Msg("order status changed")
	return updated, nil
}

// ListByBuyer returns the buyer's orders, newest first. An order whose
// artwork no longer exists is kept with a nil artwork.
func (s *OrderService) ListByBuyer(ctx context.Context, buyerID string) ([]domain.OrderView, error) {
	orders, err := s.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by buyer: %w", err)
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ArtworkID)
	}
	artworks, err := s.artworks.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("list orders by buyer: load artworks: %w", err)
	}
	return s.buildViews(ctx, orders, artworks)
}

// ListByArtist returns the orders placed on the artist's artworks. Orders
// reach the artist only through existing artworks, so dangling references
// never appear.
func (s *OrderService) ListByArtist(ctx context.Context, artistID string) ([]domain.OrderView, error) {
	artworks, err := s.artworks.List(ctx, ports.ArtworkFilter{ArtistID: artistID})
	if err != nil {
		return nil, fmt.Errorf("list orders by artist: %w", err)
	}
	if len(artworks) == 0 {
		return []domain.OrderView{}, nil
	}

	ids := make([]string, 0, len(artworks))
	for _, a := range artworks {
		ids = append(ids, a.ID)
	}
	orders, err := s.orders.ListByArtworks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list orders by artist: %w", err)
	}
	return s.buildViews(ctx, orders, artworks)
}

func (s *OrderService) buildViews(ctx context.Context, orders []*domain.Order, artworks []*domain.Artwork) ([]domain.OrderView, error) {
	views := make([]domain.OrderView, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}

	expanded, err := s.views.ExpandArtworks(ctx, artworks)
	if err != nil {
		return nil, err
	}
	artworkByID := make(map[string]*domain.ArtworkView, len(expanded))
	for i := range expanded {
		artworkByID[expanded[i].ID] = &expanded[i]
	}

	buyerIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		buyerIDs = append(buyerIDs, o.BuyerID)
	}
	buyers, err := s.users.FindByIDs(ctx, uniqueIDs(buyerIDs))
	if err != nil {
		return nil, fmt.Errorf("load buyers: %w", err)
	}
	buyerByID := indexUsers(buyers)

	for _, o := range orders {
		var buyer *domain.UserSummary
		if u, ok := buyerByID[o.BuyerID]; ok {
			buyer = u.Summary()
			buyer.Email = u.Email
		}
		views = append(views, domain.OrderView{
			ID:        o.ID,
			Artwork:   artworkByID[o.ArtworkID],
			Buyer:     buyer,
			Price:     o.Price,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		})
	}
	return views, nil
}
