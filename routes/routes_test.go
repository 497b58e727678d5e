package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sparked/config"
	"sparked/handlers"
	"sparked/ratelimit"
)

func newTestRouter(limiter *ratelimit.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		JWTSecret:   "test-secret",
		UploadDir:   ".",
		CORSOrigins: []string{"http://localhost:3000"},
	}
	h := handlers.New(nil, nil, nil, zap.NewNop(), cfg)
	return SetupRouter(h, limiter)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(nil)

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(nil)

	requests := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPut, "/api/users/me"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/all"},
		{http.MethodPost, "/api/like"},
		{http.MethodGet, "/api/matches"},
	}

	for _, r := range requests {
		req := httptest.NewRequest(r.method, r.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", r.method, r.path, w.Code)
		}
	}
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON 404 body, got content type %q", ct)
	}
}

func TestRateLimitAppliesToAPIGroup(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 2, time.Minute)
	router := newTestRouter(limiter)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after exceeding limit, got %d", last)
	}
}
