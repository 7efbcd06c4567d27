package handlers

import (
	"net/http"

	"github.com/Mr-K2901/TnP-Portal/internal/config"
	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/middleware"
	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	Cfg          *config.Config
}

func NewApplicationHandler(applications *services.ApplicationService, cfg *config.Config) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications, Cfg: cfg}
}

// Apply is POST /api/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	app, err := h.Applications.Apply(jobID, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListMine is GET /api/applications
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	page, limit := pagination(c)
	apps, total, err := h.Applications.ListByStudent(middleware.UserID(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps, "total": total, "page": page, "limit": limit})
}

// Get is GET /api/applications/:id. Students only see their own.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	app, err := h.Applications.GetForStudent(id, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ListForJob is GET /api/applications/job/:id
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)
	apps, total, err := h.Applications.ListForJob(jobID, c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps, "total": total, "page": page, "limit": limit})
}

// StatusFlow is GET /api/applications/status-flow, consumed by the
// frontend to render pipeline controls without hardcoding transitions.
func (h *ApplicationHandler) StatusFlow(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"flow":   services.StatusFlow(),
		"labels": services.StatusLabels,
	})
}

// ---------------------------------------------------------------------------
// Admin pipeline actions
// ---------------------------------------------------------------------------

func (h *ApplicationHandler) Select(c *gin.Context) {
	h.adminAction(c, h.Applications.Select)
}

func (h *ApplicationHandler) StartProcess(c *gin.Context) {
	h.adminAction(c, h.Applications.StartProcess)
}

func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	h.adminAction(c, h.Applications.ScheduleInterview)
}

func (h *ApplicationHandler) Shortlist(c *gin.Context) {
	h.adminAction(c, h.Applications.Shortlist)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.adminAction(c, h.Applications.Reject)
}

// ReleaseOffer is POST /api/applications/:id/actions/release-offer. The body is
// optional; without it the configured default deadline applies.
func (h *ApplicationHandler) ReleaseOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.OfferReleaseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
			return
		}
	}
	deadlineDays := h.Cfg.OfferDeadlineDays
	if req.DeadlineDays != nil {
		deadlineDays = *req.DeadlineDays
	}
	app, err := h.Applications.ReleaseOffer(id, deadlineDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ---------------------------------------------------------------------------
// Student actions
// ---------------------------------------------------------------------------

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	h.studentAction(c, h.Applications.Withdraw)
}

func (h *ApplicationHandler) AcceptOffer(c *gin.Context) {
	h.studentAction(c, h.Applications.AcceptOffer)
}

func (h *ApplicationHandler) DeclineOffer(c *gin.Context) {
	h.studentAction(c, h.Applications.DeclineOffer)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (h *ApplicationHandler) adminAction(c *gin.Context, action func(uuid.UUID) (*models.Application, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	app, err := action(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) studentAction(c *gin.Context, action func(id, studentID uuid.UUID) (*models.Application, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	app, err := action(id, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
