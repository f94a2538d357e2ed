package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/agrilink/backend/internal/infrastructure/auth"
	"github.com/agrilink/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withClaims injects validated claims the way the JWT middleware would
func withClaims(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyJWTClaims, claims)
		c.Next()
	}
}

func buyerClaims() *auth.Claims {
	claims := &auth.Claims{
		UserID:  uuid.New().String(),
		OrgID:   uuid.New().String(),
		IsBuyer: true,
	}
	return claims
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJobCreateRequiresAuthentication(t *testing.T) {
	h := NewJobHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/jobs", h.Create)

	w := postJSON(r, "/jobs", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJobCreateRejectsInvalidBody(t *testing.T) {
	h := NewJobHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/jobs", withClaims(buyerClaims()), h.Create)

	// service_type outside the enum never reaches the application layer
	w := postJSON(r, "/jobs", `{"service_type":"PLOW","crop_type":"Wheat","terrain":"FLAT"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestJobCancelRequiresReason(t *testing.T) {
	h := NewJobHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/jobs/:id/cancel", withClaims(buyerClaims()), h.Cancel)

	w := postJSON(r, "/jobs/"+uuid.NewString()+"/cancel", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobGetRejectsMalformedID(t *testing.T) {
	h := NewJobHandler(nil, nil, nil)
	r := gin.New()
	r.GET("/jobs/:id", withClaims(buyerClaims()), h.Get)

	req := httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid resource identifier")
}

func TestOfferAcceptRejectsMalformedID(t *testing.T) {
	h := NewOfferHandler(nil, nil)
	r := gin.New()
	r.POST("/offers/:id/accept", withClaims(buyerClaims()), h.Accept)

	w := postJSON(r, "/offers/42/accept", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthLoginRejectsInvalidEmail(t *testing.T) {
	h := NewAuthHandler(nil, nil)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := postJSON(r, "/auth/login", `{"email":"not-an-email","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrganizationRegisterRejectsShortPassword(t *testing.T) {
	h := NewOrganizationHandler(nil, nil)
	r := gin.New()
	r.POST("/organizations", h.Register)

	w := postJSON(r, "/organizations", `{
		"name": "Ferme Dubois",
		"contact_email": "contact@dubois.example",
		"is_buyer": true,
		"admin_email": "marie@dubois.example",
		"admin_password": "short",
		"admin_display_name": "Marie"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSystemPing(t *testing.T) {
	h := NewSystemHandler(nil, "agrilink", "test", nil)
	r := gin.New()
	r.GET("/ping", h.Ping)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
