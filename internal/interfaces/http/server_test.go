package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/store-pilot/internal/config"
	"github.com/your-org/store-pilot/internal/domain/catalog/catalogtest"
	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/interfaces/http/routes"
	"github.com/your-org/store-pilot/internal/pkg/auth"
)

type checkFunc func() error

func (f checkFunc) Health() error { return f() }

func newTestServer(t *testing.T, checks map[string]HealthChecker) (*Server, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := config.FromEnv()
	cfg.JWT.Secret = "server-test-secret-server-test-secret"

	sessions := session.NewManager(catalogtest.Catalog(), session.WithLogger(logger))
	deps := routes.Dependencies{
		Sessions: sessions,
		Executor: command.NewExecutor(logger),
		JWT:      auth.NewJWTManager(cfg),
		Logger:   logger,
	}
	return NewServer(cfg, deps, nil, checks, logger), sessions
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t, map[string]HealthChecker{
		"database": checkFunc(func() error { return nil }),
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.Empty(t, w.Result().Cookies(), "health checks do not open sessions")

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":6`)
}

func TestServer_Unhealthy(t *testing.T) {
	srv, _ := newTestServer(t, map[string]HealthChecker{
		"redis": checkFunc(func() error { return errors.New("connection refused") }),
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis ping failed")
}

func TestServer_SessionCookieKeepsCart(t *testing.T) {
	srv, sessions := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Blue Jacket"`)
	assert.Equal(t, 1, sessions.Len())
}

func TestServer_BearerSession(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	// Issue a token for the cookie session, then use it without the cookie
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	start := strings.Index(body, `"token":"`) + len(`"token":"`)
	token := body[start : start+strings.Index(body[start:], `"`)]

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":3}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/store", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cartItems":[{"product":{"id":3,`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/store", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
