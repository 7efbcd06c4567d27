package handlers

import (
	"net/http"

	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
)

type VoiceCampaignHandler struct {
	Campaigns  *services.CampaignService
	Dispatcher *services.Dispatcher
}

func NewVoiceCampaignHandler(campaigns *services.CampaignService, dispatcher *services.Dispatcher) *VoiceCampaignHandler {
	return &VoiceCampaignHandler{Campaigns: campaigns, Dispatcher: dispatcher}
}

// Create is POST /api/campaigns
func (h *VoiceCampaignHandler) Create(c *gin.Context) {
	var req dtos.VoiceCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	studentIDs, err := parseUUIDs(req.StudentIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.Campaigns.CreateVoice(req.Title, req.ScriptTemplate, studentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"campaign": campaign, "stats": h.Campaigns.VoiceStats(campaign.ID)})
}

// List is GET /api/campaigns
func (h *VoiceCampaignHandler) List(c *gin.Context) {
	campaigns, err := h.Campaigns.ListVoice()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items := make([]gin.H, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, gin.H{
			"campaign": campaigns[i],
			"stats":    h.Campaigns.VoiceStats(campaigns[i].ID),
		})
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": items, "total": len(items)})
}

// Get is GET /api/campaigns/:id with per-recipient call logs.
func (h *VoiceCampaignHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	campaign, logs, err := h.Campaigns.GetVoice(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campaign":  campaign,
		"call_logs": logs,
		"stats":     h.Campaigns.VoiceStats(id),
	})
}

// Update is PUT /api/campaigns/:id
func (h *VoiceCampaignHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.VoiceCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	studentIDs, err := parseUUIDs(req.StudentIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.Campaigns.UpdateVoice(id, req.Title, req.ScriptTemplate, studentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// Delete is DELETE /api/campaigns/:id
func (h *VoiceCampaignHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Campaigns.DeleteVoice(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// Start is POST /api/campaigns/:id/start
func (h *VoiceCampaignHandler) Start(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Dispatcher.StartVoiceCampaign(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign started"})
}

// Retry is POST /api/campaigns/:id/retry
func (h *VoiceCampaignHandler) Retry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, err := h.Dispatcher.RetryVoiceCampaign(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Retry queued", "retried_count": count})
}

// Cancel is POST /api/campaigns/:id/cancel
func (h *VoiceCampaignHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Dispatcher.CancelVoiceCampaign(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign cancelled"})
}
