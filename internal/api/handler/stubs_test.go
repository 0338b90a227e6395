package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Deepender31/artwork-backend/internal/api/middleware"
	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, identifier, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, identifier, password)
}

type stubArtworkService struct {
	createFn func(ctx context.Context, callerID string, in ports.ArtworkInput, image *ports.ImageUpload) (*domain.Artwork, error)
	updateFn func(ctx context.Context, callerID, id string, in ports.ArtworkInput, image *ports.ImageUpload) (*domain.Artwork, error)
	deleteFn func(ctx context.Context, callerID, id string) error
	likeFn   func(ctx context.Context, callerID, id string) (*domain.Artwork, error)
	unlikeFn func(ctx context.Context, callerID, id string) (*domain.Artwork, error)
}

func (s *stubArtworkService) Create(ctx context.Context, callerID string, in ports.ArtworkInput, image *ports.ImageUpload) (*domain.Artwork, error) {
	return s.createFn(ctx, callerID, in, image)
}

func (s *stubArtworkService) Update(ctx context.Context, callerID, id string, in ports.ArtworkInput, image *ports.ImageUpload) (*domain.Artwork, error) {
	return s.updateFn(ctx, callerID, id, in, image)
}

func (s *stubArtworkService) Delete(ctx context.Context, callerID, id string) error {
	return s.deleteFn(ctx, callerID, id)
}

func (s *stubArtworkService) Like(ctx context.Context, callerID, id string) (*domain.Artwork, error) {
	return s.likeFn(ctx, callerID, id)
}

func (s *stubArtworkService) Unlike(ctx context.Context, callerID, id string) (*domain.Artwork, error) {
	return s.unlikeFn(ctx, callerID, id)
}

type stubQueryService struct {
	listFn      func(ctx context.Context, filter ports.ArtworkFilter) ([]domain.ArtworkView, error)
	getFn       func(ctx context.Context, id string) (*domain.ArtworkView, error)
	mostLikedFn func(ctx context.Context) (*domain.ArtworkView, error)
	profileFn   func(ctx context.Context, userID string) (*domain.UserProfile, error)
	artistsFn   func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubQueryService) ListArtworks(ctx context.Context, filter ports.ArtworkFilter) ([]domain.ArtworkView, error) {
	return s.listFn(ctx, filter)
}

func (s *stubQueryService) GetArtwork(ctx context.Context, id string) (*domain.ArtworkView, error) {
	return s.getFn(ctx, id)
}

func (s *stubQueryService) MostLiked(ctx context.Context) (*domain.ArtworkView, error) {
	return s.mostLikedFn(ctx)
}

func (s *stubQueryService) ExpandArtworks(context.Context, []*domain.Artwork) ([]domain.ArtworkView, error) {
	return nil, errors.New("not used by handlers")
}

func (s *stubQueryService) GetUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubQueryService) ListArtists(ctx context.Context) ([]*domain.User, error) {
	return s.artistsFn(ctx)
}

type stubCommentService struct {
	addFn    func(ctx context.Context, callerID, artworkID, text string) (*domain.Comment, error)
	deleteFn func(ctx context.Context, callerID, artworkID, commentID string) error
}

func (s *stubCommentService) Add(ctx context.Context, callerID, artworkID, text string) (*domain.Comment, error) {
	return s.addFn(ctx, callerID, artworkID, text)
}

func (s *stubCommentService) Delete(ctx context.Context, callerID, artworkID, commentID string) error {
	return s.deleteFn(ctx, callerID, artworkID, commentID)
}

type stubOrderService struct {
	createFn       func(ctx context.Context, callerID string, in ports.CreateOrderInput) (*ports.OrderResult, error)
	transitionFn   func(ctx context.Context, callerID, orderID string, status domain.OrderStatus) (*domain.Order, error)
	listByBuyerFn  func(ctx context.Context, buyerID string) ([]domain.OrderView, error)
	listByArtistFn func(ctx context.Context, artistID string) ([]domain.OrderView, error)
}

func (s *stubOrderService) Create(ctx context.Context, callerID string, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	return s.createFn(ctx, callerID, in)
}

func (s *stubOrderService) TransitionStatus(ctx context.Context, callerID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	return s.transitionFn(ctx, callerID, orderID, status)
}

func (s *stubOrderService) ListByBuyer(ctx context.Context, buyerID string) ([]domain.OrderView, error) {
	return s.listByBuyerFn(ctx, buyerID)
}

func (s *stubOrderService) ListByArtist(ctx context.Context, artistID string) ([]domain.OrderView, error) {
	return s.listByArtistFn(ctx, artistID)
}

// newContext builds an echo context for req. A non-empty caller is injected
// the way the Auth middleware does it.
func newContext(req *http.Request, caller string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != "" {
		c.Set(middleware.ContextUserID, caller)
	}
	return c, rec
}

func jsonRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// assertHTTPError checks that err is an echo.HTTPError with the given code.
func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}
