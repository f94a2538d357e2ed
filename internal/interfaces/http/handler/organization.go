package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appidentity "github.com/agrilink/backend/internal/application/identity"
	"github.com/agrilink/backend/internal/interfaces/http/dto"
)

// OrganizationHandler handles organization management endpoints
type OrganizationHandler struct {
	BaseHandler
	orgService *appidentity.OrganizationService
}

// NewOrganizationHandler creates an organization handler
func NewOrganizationHandler(orgService *appidentity.OrganizationService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		BaseHandler: NewBaseHandler(logger),
		orgService:  orgService,
	}
}

// Register creates an organization with its first user account. This is the
// unauthenticated signup endpoint.
// POST /api/v1/organizations
func (h *OrganizationHandler) Register(c *gin.Context) {
	var req dto.RegisterOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orgService.Register(c.Request.Context(), appidentity.RegisterOrganizationInput{
		Name:             req.Name,
		ContactEmail:     req.ContactEmail,
		IsBuyer:          req.IsBuyer,
		IsOperator:       req.IsOperator,
		AdminEmail:       req.AdminEmail,
		AdminPassword:    req.AdminPassword,
		AdminDisplayName: req.AdminDisplayName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single organization.
// GET /api/v1/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	org, err := h.orgService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, org)
}

// List returns a page of organizations.
// GET /api/v1/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	orgs, total, err := h.orgService.List(c.Request.Context(), appidentity.OrganizationFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.OrderBy,
		SortDir:  req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := req.ToFilter()
	h.SuccessWithMeta(c, orgs, total, filter.Page, filter.PageSize)
}

// Update modifies the caller's own organization.
// PUT /api/v1/organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), actor.OrgID, appidentity.UpdateOrganizationInput{
		ID:           id,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, org)
}
