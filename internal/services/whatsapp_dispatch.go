package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Twilio error code returned when the WhatsApp daily message limit is hit.
// The only provider error that triggers an automatic retry.
const whatsappRateLimitCode = "63038"

func (d *Dispatcher) StartWhatsAppCampaign(id uuid.UUID) error {
	var campaign models.WhatsAppCampaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if !d.WhatsApp.IsConfigured() {
		return ErrProviderNotConfigured
	}
	if err := d.markRunning(&models.WhatsAppCampaign{}, id); err != nil {
		return err
	}
	d.Pool.Submit(func() { d.runWhatsAppCampaign(id) })
	return nil
}

func (d *Dispatcher) RetryWhatsAppCampaign(id uuid.UUID) (int64, error) {
	var campaign models.WhatsAppCampaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCampaignNotFound
		}
		return 0, err
	}
	if !d.WhatsApp.IsConfigured() {
		return 0, ErrProviderNotConfigured
	}

	res := d.DB.Model(&models.WhatsAppLog{}).
		Where("campaign_id = ? AND status = ?", id, models.LogStatusFailed).
		Updates(map[string]interface{}{
			"status":        models.LogStatusPending,
			"message_sid":   "",
			"error_message": "",
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}

	if err := d.DB.Model(&models.WhatsAppCampaign{}).Where("id = ?", id).
		Update("status", models.CampaignStatusRunning).Error; err != nil {
		return 0, err
	}
	d.Pool.Submit(func() { d.runWhatsAppCampaign(id) })
	return res.RowsAffected, nil
}

func (d *Dispatcher) CancelWhatsAppCampaign(id uuid.UUID) error {
	var campaign models.WhatsAppCampaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if err := d.DB.Model(&models.WhatsAppCampaign{}).Where("id = ?", id).
		Update("status", models.CampaignStatusCancelled).Error; err != nil {
		return err
	}
	return d.DB.Model(&models.WhatsAppLog{}).
		Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).
		Updates(map[string]interface{}{"status": models.LogStatusFailed, "error_message": "Campaign cancelled"}).Error
}

// SyncWhatsAppStatus folds provider-side message state back into the logs
// for messages we already handed off.
func (d *Dispatcher) SyncWhatsAppStatus(id uuid.UUID) (updated int, failures int, err error) {
	var campaign models.WhatsAppCampaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrCampaignNotFound
		}
		return 0, 0, err
	}

	var logs []models.WhatsAppLog
	if err := d.DB.Where("campaign_id = ? AND status IN ?", id,
		[]string{models.LogStatusSent, "QUEUED", "UNDELIVERED"}).Find(&logs).Error; err != nil {
		return 0, 0, err
	}

	for i := range logs {
		entry := &logs[i]
		if entry.MessageSID == "" {
			continue
		}
		status, err := d.WhatsApp.FetchStatus(entry.MessageSID)
		if err != nil {
			log.Printf("⚠️  Failed to sync WhatsApp log %s: %v", entry.ID, err)
			failures++
			continue
		}
		if status.Status == "" {
			continue
		}
		updates := map[string]interface{}{"status": strings.ToUpper(status.Status)}
		if status.ErrorCode != "" || status.ErrorMessage != "" {
			updates["error_message"] = strings.TrimPrefix(status.ErrorCode+": "+status.ErrorMessage, ": ")
		}
		if err := d.DB.Model(&models.WhatsAppLog{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
			failures++
			continue
		}
		updated++
	}
	return updated, failures, nil
}

func (d *Dispatcher) runWhatsAppCampaign(id uuid.UUID) {
	db := d.session()

	var campaign models.WhatsAppCampaign
	if err := db.First(&campaign, "id = ?", id).Error; err != nil {
		log.Printf("💬 WhatsApp campaign %s: load failed: %v", id, err)
		return
	}

	var logs []models.WhatsAppLog
	if err := db.Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).Find(&logs).Error; err != nil {
		log.Printf("💬 WhatsApp campaign %s: loading pending logs failed: %v", id, err)
		return
	}
	log.Printf("💬 WhatsApp campaign %s: sending %d messages...", campaign.Title, len(logs))

	for i := range logs {
		entry := &logs[i]

		student, err := d.loadStudent(db, entry.StudentID)
		if err != nil || student.Profile == nil || student.Profile.Phone == "" {
			d.failWhatsAppLog(db, entry.ID, "Student phone not found")
			continue
		}

		body := RenderTemplate(campaign.BodyText, StudentVars(student))
		d.sendWhatsAppWithRetry(db, entry.ID, student.Profile.Phone, body)

		time.Sleep(d.Cfg.WhatsAppSendDelay)
	}

	var remaining int64
	db.Model(&models.WhatsAppLog{}).
		Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).
		Count(&remaining)
	if remaining == 0 {
		db.Model(&models.WhatsAppCampaign{}).Where("id = ?", id).
			Update("status", models.CampaignStatusCompleted)
		log.Printf("✅ WhatsApp campaign %s completed", campaign.Title)
	}
}

// sendWhatsAppWithRetry delivers one message. A rate-limit error gets
// exactly one immediate retry; anything else fails the log.
func (d *Dispatcher) sendWhatsAppWithRetry(db *gorm.DB, logID uuid.UUID, phone, body string) {
	sid, err := d.WhatsApp.Send(phone, body)
	if err != nil && strings.Contains(err.Error(), whatsappRateLimitCode) {
		log.Printf("⚠️  Rate limit hit for %s. Waiting 2s...", phone)
		time.Sleep(2 * time.Second)
		sid, err = d.WhatsApp.Send(phone, body)
	}
	if err != nil {
		d.failWhatsAppLog(db, logID, err.Error())
		return
	}
	now := time.Now().UTC()
	db.Model(&models.WhatsAppLog{}).Where("id = ?", logID).
		Updates(map[string]interface{}{
			"status":      models.LogStatusSent,
			"message_sid": sid,
			"sent_at":     now,
		})
}

func (d *Dispatcher) failWhatsAppLog(db *gorm.DB, id uuid.UUID, reason string) {
	db.Model(&models.WhatsAppLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.LogStatusFailed, "error_message": reason})
}
