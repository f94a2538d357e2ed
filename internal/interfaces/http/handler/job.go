package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appmarketplace "github.com/agrilink/backend/internal/application/marketplace"
)

// JobHandler handles job lifecycle endpoints
type JobHandler struct {
	BaseHandler
	jobService   *appmarketplace.JobService
	offerService *appmarketplace.OfferService
}

// NewJobHandler creates a job handler
func NewJobHandler(jobService *appmarketplace.JobService, offerService *appmarketplace.OfferService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		BaseHandler:  NewBaseHandler(logger),
		jobService:   jobService,
		offerService: offerService,
	}
}

// Create posts a new job. Buyer organizations only.
// POST /api/v1/jobs
func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var req appmarketplace.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, job)
}

// Get returns a single job visible to the caller.
// GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// ListMine returns jobs posted by the caller's organization.
// GET /api/v1/jobs/mine
func (h *JobHandler) ListMine(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	filter, ok := h.bindJobFilter(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMine(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jobs)
}

// ListAssigned returns jobs assigned to the caller's operator organization.
// GET /api/v1/jobs/assigned
func (h *JobHandler) ListAssigned(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	filter, ok := h.bindJobFilter(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListAssigned(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jobs)
}

// Feed returns open jobs for operators, each annotated with the caller's
// matching-filter verdict.
// GET /api/v1/jobs/feed
func (h *JobHandler) Feed(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	filter, ok := h.bindJobFilter(c)
	if !ok {
		return
	}

	items, err := h.jobService.Feed(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Start marks an assigned job as in progress. Assigned operator only.
// POST /api/v1/jobs/:id/start
func (h *JobHandler) Start(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Start(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// Complete marks a job as completed. Buyer or assigned operator.
// POST /api/v1/jobs/:id/complete
func (h *JobHandler) Complete(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Complete(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// Cancel cancels a job with a mandatory reason. Owning buyer only.
// POST /api/v1/jobs/:id/cancel
func (h *JobHandler) Cancel(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appmarketplace.CancelJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	job, err := h.jobService.Cancel(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// SubmitOffer places an offer on an open job. Operator organizations only.
// POST /api/v1/jobs/:id/offers
func (h *JobHandler) SubmitOffer(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	jobID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appmarketplace.SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	offer, err := h.offerService.Submit(c.Request.Context(), actor, jobID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, offer)
}

// ListOffers returns the offers on a job. The owning buyer sees all of
// them; an operator sees only its own.
// GET /api/v1/jobs/:id/offers
func (h *JobHandler) ListOffers(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	jobID, ok := h.bindID(c)
	if !ok {
		return
	}

	var filter appmarketplace.OfferListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	offers, err := h.offerService.ListByJob(c.Request.Context(), actor, jobID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offers)
}

func (h *JobHandler) bindJobFilter(c *gin.Context) (appmarketplace.JobListFilter, bool) {
	var filter appmarketplace.JobListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return filter, false
	}
	return filter, true
}
