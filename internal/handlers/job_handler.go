package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/middleware"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	Jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

// Create is POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.Jobs.Create(services.JobInput{
		CompanyName: req.CompanyName,
		Role:        req.Role,
		CTC:         req.CTC,
		MinCGPA:     req.MinCGPA,
		IsActive:    req.IsActive,
		JDLink:      req.JDLink,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Update is PUT /api/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.Jobs.Update(id, req.Updates())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete is DELETE /api/jobs/:id. Applications cascade with the job.
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Jobs.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List is GET /api/jobs
func (h *JobHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "true"))
	role := c.GetString(middleware.ContextRoleKey)

	jobs, total, err := h.Jobs.List(role, activeOnly, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.JobListResponse{Jobs: jobs, Total: total, Page: page, Limit: limit})
}

// Get is GET /api/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	job, err := h.Jobs.Get(id, c.GetString(middleware.ContextRoleKey))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
