package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

var (
	routerOnce sync.Once
	testRouter http.Handler
)

// newTestRouter builds the router once: the request metrics register with
// the default Prometheus registry and cannot be registered twice.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	routerOnce.Do(func() {
		testRouter = NewRouter(Dependencies{JWTSecret: "secret", Log: zerolog.Nop()})
	})
	return testRouter
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "64b000000000000000000001",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	e := newTestRouter(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/artwork"},
		{http.MethodPut, "/artwork/a1"},
		{http.MethodDelete, "/artwork/a1"},
		{http.MethodPost, "/artwork/a1/like"},
		{http.MethodPost, "/artwork/a1/unlike"},
		{http.MethodPost, "/artwork/a1/comment"},
		{http.MethodDelete, "/artwork/a1/comments/c1"},
		{http.MethodPost, "/orders/create"},
		{http.MethodPatch, "/orders/o1/status"},
	}
	for _, r := range routes {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", r.method, r.path, rec.Code)
		}
	}
}

func TestRouter_CreateArtworkRequiresArtistRole(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/artwork", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := newTestRouter(t)

	for path, want := range map[string]int{
		"/health":       http.StatusOK,
		"/health/ready": http.StatusOK,
		"/metrics":      http.StatusOK,
		"/nope":         http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("GET %s: expected %d, got %d", path, want, rec.Code)
		}
	}
}
