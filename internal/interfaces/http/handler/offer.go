package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appmarketplace "github.com/agrilink/backend/internal/application/marketplace"
)

// OfferHandler handles offer lifecycle endpoints
type OfferHandler struct {
	BaseHandler
	offerService *appmarketplace.OfferService
}

// NewOfferHandler creates an offer handler
func NewOfferHandler(offerService *appmarketplace.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		BaseHandler:  NewBaseHandler(logger),
		offerService: offerService,
	}
}

// ListMine returns offers submitted by the caller's operator organization.
// GET /api/v1/offers/mine
func (h *OfferHandler) ListMine(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var filter appmarketplace.OfferListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	offers, err := h.offerService.ListMine(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offers)
}

// Get returns a single offer visible to the caller.
// GET /api/v1/offers/:id
func (h *OfferHandler) Get(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	offer, err := h.offerService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offer)
}

// Accept accepts a pending offer, assigning the job to its operator and
// rejecting all sibling offers atomically. Owning buyer only.
// POST /api/v1/offers/:id/accept
func (h *OfferHandler) Accept(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Accept(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offer)
}

// Reject rejects a pending offer. Owning buyer only.
// POST /api/v1/offers/:id/reject
func (h *OfferHandler) Reject(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	// The reason is optional, so an empty body is accepted.
	var req appmarketplace.RejectOfferRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err)
			return
		}
	}

	offer, err := h.offerService.Reject(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offer)
}

// Withdraw withdraws the caller's own pending offer.
// POST /api/v1/offers/:id/withdraw
func (h *OfferHandler) Withdraw(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Withdraw(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offer)
}
