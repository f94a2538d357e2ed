package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrilink/backend/internal/infrastructure/auth"
	"github.com/agrilink/backend/internal/infrastructure/logger"
	"github.com/agrilink/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	ContextKeyJWTClaims  = "jwt_claims"
	ContextKeyUserID     = "jwt_user_id"
	ContextKeyOrgID      = "jwt_org_id"
	ContextKeyEmail      = "jwt_email"
	ContextKeyIsBuyer    = "jwt_is_buyer"
	ContextKeyIsOperator = "jwt_is_operator"
)

// JWTAuthConfig configures the JWT authentication middleware
type JWTAuthConfig struct {
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Logger     *zap.Logger
	// SkipPaths are exact request paths that bypass authentication. An
	// entry may be method-scoped as "METHOD /path", e.g. the signup
	// endpoint is public for POST while its sibling GET stays protected.
	SkipPaths []string
}

// JWTAuthMiddleware validates the Bearer token on every request, rejects
// blacklisted or expired tokens, and stores the claims in the gin context
// for handlers downstream.
func JWTAuthMiddleware(cfg JWTAuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	skipsAuth := func(method, path string) bool {
		if _, ok := skip[path]; ok {
			return true
		}
		_, ok := skip[method+" "+path]
		return ok
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if skipsAuth(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		if cfg.Blacklist != nil {
			if err := checkBlacklist(c, cfg.Blacklist, claims, log); err != nil {
				handleAuthError(c, err)
				return
			}
		}

		c.Set(ContextKeyJWTClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyOrgID, claims.OrgID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyIsBuyer, claims.IsBuyer)
		c.Set(ContextKeyIsOperator, claims.IsOperator)

		ctx := logger.WithOrgID(c.Request.Context(), claims.OrgID)
		ctx = logger.WithUserID(ctx, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// checkBlacklist verifies the token has not been revoked individually or by a
// user-wide invalidation. Blacklist lookup failures fail open: a Redis outage
// must not take authentication down with it, but it is always logged.
func checkBlacklist(c *gin.Context, blacklist auth.TokenBlacklist, claims *auth.Claims, log *zap.Logger) error {
	blacklisted, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
	if err != nil {
		log.Error("token blacklist check failed",
			zap.Error(err),
			zap.String("jti", claims.ID))
	} else if blacklisted {
		return auth.ErrTokenBlacklisted
	}

	invalidated, err := blacklist.IsUserTokenInvalidated(c.Request.Context(), claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		log.Error("user token invalidation check failed",
			zap.Error(err),
			zap.String("user_id", claims.UserID))
		return nil
	}
	if invalidated {
		return auth.ErrTokenBlacklisted
	}
	return nil
}

var errMissingAuthHeader = errors.New("missing authorization header")

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errMissingAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func handleAuthError(c *gin.Context, err error) {
	code := "TOKEN_INVALID"
	message := "Invalid authentication token"

	switch {
	case errors.Is(err, errMissingAuthHeader):
		code = dto.ErrCodeUnauthorized
		message = "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		code = "TOKEN_EXPIRED"
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code = "TOKEN_INVALID"
		message = "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidTokenType):
		code = "TOKEN_INVALID"
		message = "Wrong token type for this endpoint"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code = "TOKEN_INVALID"
		message = "Token is not yet valid"
	}

	requestID := GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTClaims retrieves validated claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyJWTClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// MustGetJWTClaims retrieves claims or panics. Only call on routes behind
// JWTAuthMiddleware.
func MustGetJWTClaims(c *gin.Context) *auth.Claims {
	claims, ok := GetJWTClaims(c)
	if !ok {
		panic("jwt claims not found in context; is the route behind JWTAuthMiddleware?")
	}
	return claims
}
