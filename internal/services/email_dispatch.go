package services

import (
	"errors"
	"log"
	"time"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StartEmailCampaign flips the campaign to RUNNING and queues its
// execution unit. The request returns immediately.
func (d *Dispatcher) StartEmailCampaign(id uuid.UUID) error {
	var campaign models.EmailCampaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if !d.Email.IsConfigured() {
		return ErrProviderNotConfigured
	}
	if err := d.markRunning(&models.EmailCampaign{}, id); err != nil {
		return err
	}
	d.Pool.Submit(func() { d.runEmailCampaign(id) })
	return nil
}

// RetryEmailCampaign resets FAILED logs to PENDING and re-queues the
// execution unit. Returns the number of logs reset; zero leaves the
// campaign untouched.
func (d *Dispatcher) RetryEmailCampaign(id uuid.UUID) (int64, error) {
	var campaign models.EmailCampaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCampaignNotFound
		}
		return 0, err
	}
	if !d.Email.IsConfigured() {
		return 0, ErrProviderNotConfigured
	}

	res := d.DB.Model(&models.EmailLog{}).
		Where("campaign_id = ? AND status = ?", id, models.LogStatusFailed).
		Updates(map[string]interface{}{"status": models.LogStatusPending, "error_message": ""})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}

	if err := d.DB.Model(&models.EmailCampaign{}).Where("id = ?", id).
		Update("status", models.CampaignStatusRunning).Error; err != nil {
		return 0, err
	}
	d.Pool.Submit(func() { d.runEmailCampaign(id) })
	return res.RowsAffected, nil
}

// CancelEmailCampaign marks the campaign CANCELLED and fails the logs
// nothing has picked up yet. A unit already mid-flight is not interrupted.
func (d *Dispatcher) CancelEmailCampaign(id uuid.UUID) error {
	var campaign models.EmailCampaign
	if err := d.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if err := d.DB.Model(&models.EmailCampaign{}).Where("id = ?", id).
		Update("status", models.CampaignStatusCancelled).Error; err != nil {
		return err
	}
	return d.DB.Model(&models.EmailLog{}).
		Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).
		Updates(map[string]interface{}{"status": models.LogStatusFailed, "error_message": "Campaign cancelled"}).Error
}

func (d *Dispatcher) runEmailCampaign(id uuid.UUID) {
	db := d.session()

	var campaign models.EmailCampaign
	if err := db.First(&campaign, "id = ?", id).Error; err != nil {
		log.Printf("📧 Email campaign %s: load failed: %v", id, err)
		return
	}

	var logs []models.EmailLog
	if err := db.Where("campaign_id = ? AND status = ?", id, models.LogStatusPending).Find(&logs).Error; err != nil {
		log.Printf("📧 Email campaign %s: loading pending logs failed: %v", id, err)
		return
	}
	log.Printf("📧 Email campaign %s: sending %d emails...", campaign.Title, len(logs))

	for i := range logs {
		entry := &logs[i]

		db.Model(&models.EmailLog{}).Where("id = ?", entry.ID).
			Update("status", models.LogStatusSending)

		student, err := d.loadStudent(db, entry.StudentID)
		if err != nil {
			d.failEmailLog(db, entry.ID, "Student not found")
			continue
		}

		vars := StudentVars(student)
		subject := RenderTemplate(campaign.Subject, vars)
		body := RenderTemplate(campaign.BodyHTML, vars)

		if err := d.Email.Send(student.Email, subject, body); err != nil {
			d.failEmailLog(db, entry.ID, err.Error())
		} else {
			now := time.Now().UTC()
			db.Model(&models.EmailLog{}).Where("id = ?", entry.ID).
				Updates(map[string]interface{}{"status": models.LogStatusSent, "sent_at": now})
		}

		time.Sleep(d.Cfg.EmailSendDelay)
	}

	// Campaign is complete once nothing is pending or mid-send.
	var remaining int64
	db.Model(&models.EmailLog{}).
		Where("campaign_id = ? AND status IN ?", id, []string{models.LogStatusPending, models.LogStatusSending}).
		Count(&remaining)
	if remaining == 0 {
		db.Model(&models.EmailCampaign{}).Where("id = ?", id).
			Update("status", models.CampaignStatusCompleted)
		log.Printf("✅ Email campaign %s completed", campaign.Title)
	}
}

func (d *Dispatcher) failEmailLog(db *gorm.DB, id uuid.UUID, reason string) {
	db.Model(&models.EmailLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.LogStatusFailed, "error_message": reason})
}
