package services

import (
	"errors"
	"log"
	"time"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voice logs that a retry resets back to PENDING: outright failures plus
// calls stuck in an intermediate state.
var retryableCallStatuses = []string{
	models.LogStatusFailed,
	models.LogStatusInProgress,
	models.LogStatusBusy,
	models.LogStatusNoAnswer,
}

func (d *Dispatcher) StartVoiceCampaign(id uuid.UUID) error {
	var campaign models.Campaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if !d.Voice.IsConfigured() {
		return ErrProviderNotConfigured
	}
	if err := d.markRunning(&models.Campaign{}, id); err != nil {
		return err
	}
	d.Pool.Submit(func() { d.runVoiceCampaign(id) })
	return nil
}

// RetryVoiceCampaign resets failed and stuck calls to PENDING, clearing
// the call sid, recording and transcript from the previous attempt.
func (d *Dispatcher) RetryVoiceCampaign(id uuid.UUID) (int64, error) {
	var campaign models.Campaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCampaignNotFound
		}
		return 0, err
	}
	if !d.Voice.IsConfigured() {
		return 0, ErrProviderNotConfigured
	}

	res := d.DB.Model(&models.CallLog{}).
		Where("campaign_id = ? AND status IN ?", id, retryableCallStatuses).
		Updates(map[string]interface{}{
			"status":             models.LogStatusPending,
			"twilio_sid":         "",
			"recording_url":      "",
			"transcription_text": "",
			"error_message":      "",
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}

	if err := d.DB.Model(&models.Campaign{}).Where("id = ?", id).
		Update("status", models.CampaignStatusRunning).Error; err != nil {
		return 0, err
	}
	d.Pool.Submit(func() { d.runVoiceCampaign(id) })
	return res.RowsAffected, nil
}

func (d *Dispatcher) CancelVoiceCampaign(id uuid.UUID) error {
	var campaign models.Campaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if err := d.DB.Model(&models.Campaign{}).Where("id = ?", id).
		Update("status", models.CampaignStatusCancelled).Error; err != nil {
		return err
	}
	return d.DB.Model(&models.CallLog{}).
		Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).
		Updates(map[string]interface{}{"status": models.LogStatusFailed, "error_message": "Campaign cancelled"}).Error
}

func (d *Dispatcher) runVoiceCampaign(id uuid.UUID) {
	db := d.session()

	var campaign models.Campaign
	if err := db.First(&campaign, "id = ?", id).Error; err != nil {
		log.Printf("📞 Voice campaign %s: load failed: %v", id, err)
		return
	}

	var logs []models.CallLog
	if err := db.Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).Find(&logs).Error; err != nil {
		log.Printf("📞 Voice campaign %s: loading pending logs failed: %v", id, err)
		return
	}
	log.Printf("📞 Voice campaign %s: dialing %d students...", campaign.Title, len(logs))

	for i := range logs {
		entry := &logs[i]

		student, err := d.loadStudent(db, entry.StudentID)
		if err != nil || student.Profile == nil || student.Profile.Phone == "" {
			d.failCallLog(db, entry.ID, "Student phone not found")
			continue
		}

		sid, err := d.Voice.Dial(student.Profile.Phone, entry.ID.String())
		if err != nil {
			d.failCallLog(db, entry.ID, err.Error())
		} else {
			// Resolved later by the Twilio status/transcription webhooks.
			db.Model(&models.CallLog{}).Where("id = ?", entry.ID).
				Updates(map[string]interface{}{
					"status":     models.LogStatusInProgress,
					"twilio_sid": sid,
				})
		}

		time.Sleep(d.Cfg.VoiceDialDelay)
	}

	var remaining int64
	db.Model(&models.CallLog{}).
		Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).
		Count(&remaining)
	if remaining == 0 {
		db.Model(&models.Campaign{}).Where("id = ?", id).
			Update("status", models.CampaignStatusCompleted)
		log.Printf("✅ Voice campaign %s completed", campaign.Title)
	}
}

func (d *Dispatcher) failCallLog(db *gorm.DB, id uuid.UUID, reason string) {
	db.Model(&models.CallLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.LogStatusFailed, "error_message": reason})
}

// callStatusMapping translates Twilio call states to call log statuses.
var callStatusMapping = map[string]string{
	"initiated":   models.LogStatusInProgress,
	"ringing":     models.LogStatusInProgress,
	"in-progress": models.LogStatusInProgress,
	"answered":    models.LogStatusInProgress,
	"completed":   models.LogStatusCompleted,
	"busy":        models.LogStatusBusy,
	"no-answer":   models.LogStatusNoAnswer,
	"failed":      models.LogStatusFailed,
	"canceled":    models.LogStatusFailed,
}

// ReconcileCallStatus returns the log status after a provider callback.
// COMPLETED is never downgraded: callbacks can arrive out of order, so a
// late "ringing" event must not undo a finished call. Re-affirming
// COMPLETED is allowed. Unknown provider states leave the log untouched.
func ReconcileCallStatus(current, providerStatus string) string {
	mapped, ok := callStatusMapping[providerStatus]
	if !ok {
		return current
	}
	if current == models.LogStatusCompleted && mapped != models.LogStatusCompleted {
		return current
	}
	return mapped
}
