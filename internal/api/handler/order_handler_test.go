package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

func TestOrderHandler_Create(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, callerID string, in ports.CreateOrderInput) (*ports.OrderResult, error) {
			if callerID != "buyer-1" || in.ArtworkID != "a1" || in.Price != 99.5 || in.IdempotencyKey != "k-1" {
				t.Fatalf("unexpected args %s %+v", callerID, in)
			}
			return &ports.OrderResult{Order: &domain.Order{ID: "o1", Status: domain.OrderPending}}, nil
		},
	}
	handler := NewOrderHandler(stub)

	req := jsonRequest(http.MethodPost, "/orders/create", strings.NewReader(`{"artworkId":"a1","price":99.5}`))
	req.Header.Set(HeaderIdempotencyKey, " k-1 ")
	c, rec := newContext(req, "buyer-1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_Replay(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, callerID string, in ports.CreateOrderInput) (*ports.OrderResult, error) {
			return &ports.OrderResult{Order: &domain.Order{ID: "o1"}, AlreadyExisted: true}, nil
		},
	}
	handler := NewOrderHandler(stub)

	req := jsonRequest(http.MethodPost, "/orders/create", strings.NewReader(`{"artworkId":"a1","price":1}`))
	req.Header.Set(HeaderIdempotencyKey, "k-1")
	c, rec := newContext(req, "buyer-1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_KeyTooLong(t *testing.T) {
	handler := NewOrderHandler(&stubOrderService{})

	req := jsonRequest(http.MethodPost, "/orders/create", strings.NewReader(`{"artworkId":"a1","price":1}`))
	req.Header.Set(HeaderIdempotencyKey, strings.Repeat("k", maxIdempotencyKeyLen+1))
	c, _ := newContext(req, "buyer-1")

	if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	stub := &stubOrderService{
		transitionFn: func(ctx context.Context, callerID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
			if orderID != "o1" || status != domain.OrderCompleted {
				t.Fatalf("unexpected args %s %s", orderID, status)
			}
			return &domain.Order{ID: orderID, Status: status}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newContext(jsonRequest(http.MethodPatch, "/orders/o1/status", strings.NewReader(`{"status":"completed"}`)), "artist-1")
	c.SetParamNames("id")
	c.SetParamValues("o1")
	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// pending is a valid status but not a transition target.
	c, _ = newContext(jsonRequest(http.MethodPatch, "/orders/o1/status", strings.NewReader(`{"status":"pending"}`)), "artist-1")
	c.SetParamNames("id")
	c.SetParamValues("o1")
	if err := handler.UpdateStatus(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderHandler_Lists(t *testing.T) {
	stub := &stubOrderService{
		listByBuyerFn: func(ctx context.Context, buyerID string) ([]domain.OrderView, error) {
			if buyerID != "buyer-1" {
				t.Fatalf("unexpected buyer %q", buyerID)
			}
			return []domain.OrderView{{ID: "o1"}}, nil
		},
		listByArtistFn: func(ctx context.Context, artistID string) ([]domain.OrderView, error) {
			if artistID != "artist-1" {
				t.Fatalf("unexpected artist %q", artistID)
			}
			return []domain.OrderView{}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/orders/user/buyer-1", nil), "")
	c.SetParamNames("userId")
	c.SetParamValues("buyer-1")
	if err := handler.ListByBuyer(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("ListByBuyer: %v %d", err, rec.Code)
	}

	c, rec = newContext(httptest.NewRequest(http.MethodGet, "/orders/artist/artist-1", nil), "")
	c.SetParamNames("artistId")
	c.SetParamValues("artist-1")
	if err := handler.ListByArtist(c); err != nil || rec.Body.String() != "[]\n" {
		t.Fatalf("ListByArtist: %v %q", err, rec.Body.String())
	}
}
