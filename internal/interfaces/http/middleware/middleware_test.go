package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/backend/internal/infrastructure/auth"
	"github.com/agrilink/backend/internal/infrastructure/config"
	"github.com/agrilink/backend/internal/infrastructure/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		assert.NotEmpty(t, GetRequestID(c))
		c.Status(http.StatusOK)
	})

	w := performRequest(r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(RequestIDHeader), 32)
}

func TestRequestIDMiddlewarePreservesInbound(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		// The ID must also reach the request context for log correlation
		assert.Equal(t, "abc-123", logger.GetRequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	w := performRequest(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddlewareWhitelist(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(CORSConfig{AllowOrigins: []string{"https://app.example.com"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(r, http.MethodGet, "/", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = performRequest(r, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddlewareWildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(CORSConfig{AllowOrigins: []string{"*"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(r, http.MethodGet, "/", map[string]string{"Origin": "https://anywhere.example.com"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(CORSConfig{AllowOrigins: []string{"*"}}))

	w := performRequest(r, http.MethodOptions, "/", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecureMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(SecureMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(r, http.MethodGet, "/", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestBodyLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimitMiddleware(16))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Requests: 2, Window: time.Minute})
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := performRequest(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := performRequest(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "agrilink-test",
		MaxRefreshCount:        10,
	})
}

func jwtTestRouter(t *testing.T, blacklist auth.TokenBlacklist) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	svc := newTestJWTService()
	r := gin.New()
	r.Use(JWTAuthMiddleware(JWTAuthConfig{
		JWTService: svc,
		Blacklist:  blacklist,
		SkipPaths:  []string{"/public"},
	}))
	r.GET("/protected", func(c *gin.Context) {
		claims := MustGetJWTClaims(c)
		// Authenticated requests carry actor identifiers in the context
		assert.Equal(t, claims.OrgID, logger.GetOrgID(c.Request.Context()))
		assert.Equal(t, claims.UserID, logger.GetUserID(c.Request.Context()))
		c.JSON(http.StatusOK, gin.H{"org_id": claims.OrgID})
	})
	r.GET("/public", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, svc
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	r, svc := jwtTestRouter(t, nil)

	orgID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:     uuid.New(),
		OrgID:      orgID,
		Email:      "buyer@example.com",
		IsBuyer:    true,
	})
	require.NoError(t, err)

	w := performRequest(r, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer " + pair.AccessToken,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), orgID.String())
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	r, _ := jwtTestRouter(t, nil)

	w := performRequest(r, http.MethodGet, "/protected", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuthMiddlewareMalformedToken(t *testing.T) {
	r, _ := jwtTestRouter(t, nil)

	w := performRequest(r, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer not-a-jwt",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
}

func TestJWTAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	r, svc := jwtTestRouter(t, nil)

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		OrgID:  uuid.New(),
	})
	require.NoError(t, err)

	w := performRequest(r, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer " + pair.RefreshToken,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareBlacklistedToken(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	r, svc := jwtTestRouter(t, blacklist)

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		OrgID:  uuid.New(),
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(t.Context(), claims.ID, time.Hour))

	w := performRequest(r, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer " + pair.AccessToken,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestJWTAuthMiddlewareSkipPaths(t *testing.T) {
	r, _ := jwtTestRouter(t, nil)

	w := performRequest(r, http.MethodGet, "/public", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
