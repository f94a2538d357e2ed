package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appmarketplace "github.com/agrilink/backend/internal/application/marketplace"
)

// ServiceConfigHandler handles operator service configuration endpoints
type ServiceConfigHandler struct {
	BaseHandler
	configService *appmarketplace.ServiceConfigService
}

// NewServiceConfigHandler creates a service configuration handler
func NewServiceConfigHandler(configService *appmarketplace.ServiceConfigService, logger *zap.Logger) *ServiceConfigHandler {
	return &ServiceConfigHandler{
		BaseHandler:   NewBaseHandler(logger),
		configService: configService,
	}
}

// Get returns the caller's service configuration. Operators that never
// saved one get the default configuration with filters disabled.
// GET /api/v1/service-configuration
func (h *ServiceConfigHandler) Get(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	cfg, err := h.configService.Get(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cfg)
}

// Update replaces the caller's service configuration.
// PUT /api/v1/service-configuration
func (h *ServiceConfigHandler) Update(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var req appmarketplace.UpdateServiceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	cfg, err := h.configService.Update(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cfg)
}
