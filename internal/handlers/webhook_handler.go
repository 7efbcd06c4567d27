package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebhookHandler receives Twilio callbacks for voice campaigns. These
// endpoints are unauthenticated: Twilio addresses them directly, keyed
// by the call_log_id query parameter we put in the callback URLs.
type WebhookHandler struct {
	DB     *gorm.DB
	Twilio *services.TwilioService
}

func NewWebhookHandler(db *gorm.DB, twilio *services.TwilioService) *WebhookHandler {
	return &WebhookHandler{DB: db, Twilio: twilio}
}

const errorTwiML = "<Response><Say>Sorry, an error occurred.</Say><Hangup/></Response>"

// Voice is POST /api/webhooks/twilio/voice. Twilio fetches this when the
// call connects; we answer with TwiML speaking the rendered script and
// recording the student's response.
func (h *WebhookHandler) Voice(c *gin.Context) {
	entry, ok := h.callLog(c)
	if !ok {
		c.Data(http.StatusOK, "application/xml", []byte(errorTwiML))
		return
	}

	var campaign models.Campaign
	script := "Hello, this is a call from the Training and Placement Cell."
	if err := h.DB.First(&campaign, "id = ?", entry.CampaignID).Error; err == nil {
		script = campaign.ScriptTemplate
	}

	var student models.User
	if err := h.DB.Preload("Profile").First(&student, "id = ?", entry.StudentID).Error; err == nil {
		script = services.RenderTemplate(script, services.StudentVars(&student))
	}

	twiml, err := h.Twilio.VoiceScriptTwiML(script, entry.ID.String())
	if err != nil {
		c.Data(http.StatusOK, "application/xml", []byte(errorTwiML))
		return
	}
	c.Data(http.StatusOK, "application/xml", []byte(twiml))
}

// Recording is POST /api/webhooks/twilio/recording, fired when the
// recording finishes. Stores the recording URL and duration.
func (h *WebhookHandler) Recording(c *gin.Context) {
	entry, ok := h.callLog(c)
	if ok {
		updates := map[string]interface{}{}
		if url := c.PostForm("RecordingUrl"); url != "" {
			updates["recording_url"] = url
		}
		if raw := c.PostForm("RecordingDuration"); raw != "" {
			if duration, err := strconv.ParseFloat(raw, 64); err == nil {
				updates["duration"] = duration
			}
		}
		if len(updates) > 0 {
			h.DB.Model(&models.CallLog{}).Where("id = ?", entry.ID).Updates(updates)
		}
	}

	twiml, err := h.Twilio.RecordingCompleteTwiML()
	if err != nil {
		c.Data(http.StatusOK, "application/xml", []byte(errorTwiML))
		return
	}
	c.Data(http.StatusOK, "application/xml", []byte(twiml))
}

// Transcription is POST /api/webhooks/twilio/transcription, the async
// callback with the speech-to-text result. A transcription arriving
// means the call ran to completion.
func (h *WebhookHandler) Transcription(c *gin.Context) {
	entry, ok := h.callLog(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "not_found"})
		return
	}
	if text := c.PostForm("TranscriptionText"); text != "" {
		h.DB.Model(&models.CallLog{}).Where("id = ?", entry.ID).
			Updates(map[string]interface{}{
				"transcription_text": text,
				"status":             models.LogStatusCompleted,
			})
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status is POST /api/webhooks/twilio/status, fired on call state
// changes. Events can arrive out of order; reconciliation keeps
// COMPLETED sticky.
func (h *WebhookHandler) Status(c *gin.Context) {
	entry, ok := h.callLog(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "not_found"})
		return
	}

	updates := map[string]interface{}{}
	if callStatus := c.PostForm("CallStatus"); callStatus != "" {
		next := services.ReconcileCallStatus(entry.Status, callStatus)
		if next != entry.Status {
			updates["status"] = next
		}
	}
	if raw := c.PostForm("CallDuration"); raw != "" {
		if duration, err := strconv.ParseFloat(raw, 64); err == nil {
			updates["duration"] = duration
		}
	}
	if len(updates) > 0 {
		h.DB.Model(&models.CallLog{}).Where("id = ?", entry.ID).Updates(updates)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebhookHandler) callLog(c *gin.Context) (*models.CallLog, bool) {
	id, err := uuid.Parse(c.Query("call_log_id"))
	if err != nil {
		return nil, false
	}
	var entry models.CallLog
	if err := h.DB.First(&entry, "id = ?", id).Error; err != nil {
		return nil, false
	}
	return &entry, true
}
