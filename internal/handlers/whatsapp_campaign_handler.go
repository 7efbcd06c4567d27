package handlers

import (
	"net/http"

	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
)

type WhatsAppCampaignHandler struct {
	Campaigns  *services.CampaignService
	Templates  *services.TemplateService
	Dispatcher *services.Dispatcher
}

func NewWhatsAppCampaignHandler(campaigns *services.CampaignService, templates *services.TemplateService, dispatcher *services.Dispatcher) *WhatsAppCampaignHandler {
	return &WhatsAppCampaignHandler{Campaigns: campaigns, Templates: templates, Dispatcher: dispatcher}
}

// Create is POST /api/whatsapp-campaigns
func (h *WhatsAppCampaignHandler) Create(c *gin.Context) {
	var req dtos.WhatsAppCampaignRequest
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
	campaign, err := h.Campaigns.CreateWhatsApp(req.Title, req.BodyText, templateID, studentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"campaign": campaign, "stats": h.Campaigns.WhatsAppStats(campaign.ID)})
}

// List is GET /api/whatsapp-campaigns
func (h *WhatsAppCampaignHandler) List(c *gin.Context) {
	campaigns, err := h.Campaigns.ListWhatsApp()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items := make([]gin.H, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, gin.H{
			"campaign": campaigns[i],
			"stats":    h.Campaigns.WhatsAppStats(campaigns[i].ID),
		})
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": items, "total": len(items)})
}

// Get is GET /api/whatsapp-campaigns/:id
func (h *WhatsAppCampaignHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	campaign, logs, err := h.Campaigns.GetWhatsApp(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campaign": campaign,
		"logs":     logs,
		"stats":    h.Campaigns.WhatsAppStats(id),
	})
}

// Update is PUT /api/whatsapp-campaigns/:id
func (h *WhatsAppCampaignHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.WhatsAppCampaignRequest
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
	campaign, err := h.Campaigns.UpdateWhatsApp(id, req.Title, req.BodyText, templateID, studentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// Delete is DELETE /api/whatsapp-campaigns/:id
func (h *WhatsAppCampaignHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Campaigns.DeleteWhatsApp(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// Start is POST /api/whatsapp-campaigns/:id/start
func (h *WhatsAppCampaignHandler) Start(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Dispatcher.StartWhatsAppCampaign(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign started"})
}

// Retry is POST /api/whatsapp-campaigns/:id/retry
func (h *WhatsAppCampaignHandler) Retry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, err := h.Dispatcher.RetryWhatsAppCampaign(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Retry queued", "retried_count": count})
}

// Cancel is POST /api/whatsapp-campaigns/:id/cancel
func (h *WhatsAppCampaignHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Dispatcher.CancelWhatsAppCampaign(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign cancelled"})
}

// SyncStatus is POST /api/whatsapp-campaigns/:id/sync-status. Pulls
// provider-side delivery state for messages already handed off.
func (h *WhatsAppCampaignHandler) SyncStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	updated, failures, err := h.Dispatcher.SyncWhatsAppStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated, "failures": failures})
}

// ListTemplates is GET /api/whatsapp-campaigns/templates/list
func (h *WhatsAppCampaignHandler) ListTemplates(c *gin.Context) {
	templates, err := h.Templates.ListWhatsApp()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// CreateTemplate is POST /api/whatsapp-campaigns/templates
func (h *WhatsAppCampaignHandler) CreateTemplate(c *gin.Context) {
	var req dtos.WhatsAppTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	tpl, err := h.Templates.CreateWhatsApp(req.Name, req.BodyText, req.Variables)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}
