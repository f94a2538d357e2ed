package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appmarketplace "github.com/agrilink/backend/internal/application/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/interfaces/http/dto"
	"github.com/agrilink/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared response helpers for all HTTP handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{logger: logger}
}

// Success writes a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 envelope with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created writes a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 validation error, used for binding failures
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	h.respondError(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
}

// HandleError translates domain errors into HTTP responses. Unknown errors
// become an opaque 500 and are logged with the request ID for correlation.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status == http.StatusInternalServerError {
			h.logger.Error("domain error surfaced as internal",
				zap.String("code", domainErr.Code),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err))
		}
		h.respondError(c, status, domainErr.Code, domainErr.Message)
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err))
	h.respondError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Internal server error")
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// getActor builds the acting identity from validated JWT claims. Routes
// calling this must sit behind the JWT middleware.
func (h *BaseHandler) getActor(c *gin.Context) (appmarketplace.Actor, bool) {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return appmarketplace.Actor{}, false
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.respondError(c, http.StatusUnauthorized, "TOKEN_INVALID", "Invalid user identifier in token")
		return appmarketplace.Actor{}, false
	}
	orgID, err := claims.GetOrgUUID()
	if err != nil {
		h.respondError(c, http.StatusUnauthorized, "TOKEN_INVALID", "Invalid organization identifier in token")
		return appmarketplace.Actor{}, false
	}

	return appmarketplace.Actor{
		UserID:     userID,
		OrgID:      orgID,
		IsBuyer:    claims.IsBuyer,
		IsOperator: claims.IsOperator,
	}, true
}

// bindID parses the :id path parameter as a UUID
func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, dto.ErrCodeValidation, "Invalid resource identifier")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, dto.ErrCodeValidation, "Invalid resource identifier")
		return uuid.Nil, false
	}
	return id, true
}
