package handlers

import (
	"net/http"

	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
)

type EmailCampaignHandler struct {
	Campaigns  *services.CampaignService
	Dispatcher *services.Dispatcher
}

func NewEmailCampaignHandler(campaigns *services.CampaignService, dispatcher *services.Dispatcher) *EmailCampaignHandler {
	return &EmailCampaignHandler{Campaigns: campaigns, Dispatcher: dispatcher}
}

// Create is POST /api/email-campaigns
func (h *EmailCampaignHandler) Create(c *gin.Context) {
	var req dtos.EmailCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	studentIDs, err := parseUUIDs(req.StudentIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	templateID, err := parseOptionalUUID(req.TemplateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.Campaigns.CreateEmail(req.Title, req.Subject, req.BodyHTML, templateID, studentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"campaign": campaign, "stats": h.Campaigns.EmailStats(campaign.ID)})
}

// List is GET /api/email-campaigns
func (h *EmailCampaignHandler) List(c *gin.Context) {
	campaigns, err := h.Campaigns.ListEmail()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items := make([]gin.H, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, gin.H{
			"campaign": campaigns[i],
			"stats":    h.Campaigns.EmailStats(campaigns[i].ID),
		})
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": items, "total": len(items)})
}

// Get is GET /api/email-campaigns/:id
func (h *EmailCampaignHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	campaign, logs, err := h.Campaigns.GetEmail(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campaign":   campaign,
		"email_logs": logs,
		"stats":      h.Campaigns.EmailStats(id),
	})
}

// Update is PUT /api/email-campaigns/:id
func (h *EmailCampaignHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.EmailCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	studentIDs, err := parseUUIDs(req.StudentIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	templateID, err := parseOptionalUUID(req.TemplateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.Campaigns.UpdateEmail(id, req.Title, req.Subject, req.BodyHTML, templateID, studentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// Delete is DELETE /api/email-campaigns/:id
func (h *EmailCampaignHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Campaigns.DeleteEmail(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// Start is POST /api/email-campaigns/:id/start
func (h *EmailCampaignHandler) Start(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Dispatcher.StartEmailCampaign(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign started"})
}

// Retry is POST /api/email-campaigns/:id/retry
func (h *EmailCampaignHandler) Retry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, err := h.Dispatcher.RetryEmailCampaign(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Retry queued", "retried_count": count})
}

// Cancel is POST /api/email-campaigns/:id/cancel
func (h *EmailCampaignHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Dispatcher.CancelEmailCampaign(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign cancelled"})
}
