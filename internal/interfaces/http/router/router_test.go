package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/agrilink/backend/internal/infrastructure/auth"
	"github.com/agrilink/backend/internal/infrastructure/config"
	"github.com/agrilink/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testEngine() *gin.Engine {
	cfg := &config.Config{
		App: config.AppConfig{Name: "agrilink", Env: "test"},
		JWT: config.JWTConfig{
			Secret:                 "test-secret-at-least-32-characters!!",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "agrilink-test",
		},
	}

	logger := zap.NewNop()
	return New(
		Dependencies{
			Config:     cfg,
			Logger:     logger,
			JWTService: auth.NewJWTService(cfg.JWT),
			Blacklist:  auth.NewInMemoryTokenBlacklist(),
		},
		Handlers{
			System:        handler.NewSystemHandler(nil, "agrilink", "test", logger),
			Auth:          handler.NewAuthHandler(nil, logger),
			Organization:  handler.NewOrganizationHandler(nil, logger),
			ServiceConfig: handler.NewServiceConfigHandler(nil, logger),
			Job:           handler.NewJobHandler(nil, nil, logger),
			Offer:         handler.NewOfferHandler(nil, logger),
			Notification:  handler.NewNotificationHandler(nil, logger),
		},
	)
}

func TestRouterMountsExpectedRoutes(t *testing.T) {
	engine := testEngine()

	want := []string{
		"GET /health",
		"GET /api/v1/system/ping",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"POST /api/v1/auth/change-password",
		"POST /api/v1/organizations",
		"GET /api/v1/organizations",
		"GET /api/v1/organizations/:id",
		"PUT /api/v1/organizations/:id",
		"GET /api/v1/service-configuration",
		"PUT /api/v1/service-configuration",
		"POST /api/v1/jobs",
		"GET /api/v1/jobs/mine",
		"GET /api/v1/jobs/assigned",
		"GET /api/v1/jobs/feed",
		"GET /api/v1/jobs/:id",
		"POST /api/v1/jobs/:id/start",
		"POST /api/v1/jobs/:id/complete",
		"POST /api/v1/jobs/:id/cancel",
		"POST /api/v1/jobs/:id/offers",
		"GET /api/v1/jobs/:id/offers",
		"GET /api/v1/offers/mine",
		"GET /api/v1/offers/:id",
		"POST /api/v1/offers/:id/accept",
		"POST /api/v1/offers/:id/reject",
		"POST /api/v1/offers/:id/withdraw",
		"GET /api/v1/notifications",
		"POST /api/v1/notifications/:id/read",
	}

	mounted := make(map[string]bool)
	for _, route := range engine.Routes() {
		mounted[route.Method+" "+route.Path] = true
	}

	for _, key := range want {
		assert.True(t, mounted[key], "route not mounted: %s", key)
	}
}

func TestProtectedRouteRejectsAnonymous(t *testing.T) {
	engine := testEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/feed", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicPingSkipsAuthentication(t *testing.T) {
	engine := testEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrganizationListRequiresAuthentication(t *testing.T) {
	engine := testEngine()

	// signup POST is public, the listing GET on the same path is not
	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
