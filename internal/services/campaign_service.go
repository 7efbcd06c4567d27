package services

import (
	"errors"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignService holds campaign definitions and their delivery logs.
// One log row per recipient, created PENDING when the campaign is created
// or its recipients are reset. Only the Dispatcher and the Twilio webhooks
// mutate log state after that.
type CampaignService struct {
	DB *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{DB: db}
}

// DeliveryStats summarizes a campaign's logs for list/detail responses.
type DeliveryStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Sent      int64 `json:"sent"`
	Failed    int64 `json:"failed"`
}

// ---------------------------------------------------------------------------
// Voice campaigns
// ---------------------------------------------------------------------------

func (s *CampaignService) CreateVoice(title, scriptTemplate string, studentIDs []uuid.UUID) (*models.Campaign, error) {
	campaign := &models.Campaign{
		Title:          title,
		ScriptTemplate: scriptTemplate,
		Status:         models.CampaignStatusDraft,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(campaign).Error; err != nil {
			return err
		}
		return createCallLogs(tx, campaign.ID, studentIDs)
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) ListVoice() ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := s.DB.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

func (s *CampaignService) GetVoice(id uuid.UUID) (*models.Campaign, []models.CallLog, error) {
	var campaign models.Campaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCampaignNotFound
		}
		return nil, nil, err
	}
	var logs []models.CallLog
	err := s.DB.Preload("Student").Preload("Student.Profile").
		Where("campaign_id = ?", id).Find(&logs).Error
	return &campaign, logs, err
}

// UpdateVoice always updates metadata; recipients are only reset while the
// campaign is still DRAFT.
func (s *CampaignService) UpdateVoice(id uuid.UUID, title, scriptTemplate string, studentIDs []uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		campaign.Title = title
		campaign.ScriptTemplate = scriptTemplate
		if err := tx.Save(&campaign).Error; err != nil {
			return err
		}
		if campaign.Status == models.CampaignStatusDraft {
			if err := tx.Where("campaign_id = ?", id).Delete(&models.CallLog{}).Error; err != nil {
				return err
			}
			return createCallLogs(tx, id, studentIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// DeleteVoice removes a campaign and its logs. Completed campaigns are
// kept as an audit record.
func (s *CampaignService) DeleteVoice(id uuid.UUID) error {
	var campaign models.Campaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if campaign.Status == models.CampaignStatusCompleted {
		return ErrCampaignCompleted
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.CallLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Campaign{}, "id = ?", id).Error
	})
}

func (s *CampaignService) VoiceStats(id uuid.UUID) DeliveryStats {
	var stats DeliveryStats
	s.DB.Model(&models.CallLog{}).Where("campaign_id = ?", id).Count(&stats.Total)
	s.DB.Model(&models.CallLog{}).Where("campaign_id = ? AND status = ?", id, models.LogStatusCompleted).Count(&stats.Completed)
	s.DB.Model(&models.CallLog{}).Where("campaign_id = ? AND status = ?", id, models.LogStatusFailed).Count(&stats.Failed)
	return stats
}

// ---------------------------------------------------------------------------
// Email campaigns
// ---------------------------------------------------------------------------

func (s *CampaignService) CreateEmail(title, subject, bodyHTML string, templateID *uuid.UUID, studentIDs []uuid.UUID) (*models.EmailCampaign, error) {
	campaign := &models.EmailCampaign{
		Title:      title,
		TemplateID: templateID,
		Subject:    subject,
		BodyHTML:   bodyHTML,
		Status:     models.CampaignStatusDraft,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(campaign).Error; err != nil {
			return err
		}
		return createEmailLogs(tx, campaign.ID, studentIDs)
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) ListEmail() ([]models.EmailCampaign, error) {
	var campaigns []models.EmailCampaign
	err := s.DB.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

func (s *CampaignService) GetEmail(id uuid.UUID) (*models.EmailCampaign, []models.EmailLog, error) {
	var campaign models.EmailCampaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCampaignNotFound
		}
		return nil, nil, err
	}
	var logs []models.EmailLog
	err := s.DB.Preload("Student").Preload("Student.Profile").
		Where("campaign_id = ?", id).Find(&logs).Error
	return &campaign, logs, err
}

func (s *CampaignService) UpdateEmail(id uuid.UUID, title, subject, bodyHTML string, templateID *uuid.UUID, studentIDs []uuid.UUID) (*models.EmailCampaign, error) {
	var campaign models.EmailCampaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		campaign.Title = title
		campaign.Subject = subject
		campaign.BodyHTML = bodyHTML
		campaign.TemplateID = templateID
		if err := tx.Save(&campaign).Error; err != nil {
			return err
		}
		if campaign.Status == models.CampaignStatusDraft {
			if err := tx.Where("campaign_id = ?", id).Delete(&models.EmailLog{}).Error; err != nil {
				return err
			}
			return createEmailLogs(tx, id, studentIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) DeleteEmail(id uuid.UUID) error {
	var campaign models.EmailCampaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if campaign.Status == models.CampaignStatusCompleted {
		return ErrCampaignCompleted
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.EmailLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.EmailCampaign{}, "id = ?", id).Error
	})
}

func (s *CampaignService) EmailStats(id uuid.UUID) DeliveryStats {
	var stats DeliveryStats
	s.DB.Model(&models.EmailLog{}).Where("campaign_id = ?", id).Count(&stats.Total)
	s.DB.Model(&models.EmailLog{}).Where("campaign_id = ? AND status = ?", id, models.LogStatusSent).Count(&stats.Sent)
	s.DB.Model(&models.EmailLog{}).Where("campaign_id = ? AND status = ?", id, models.LogStatusFailed).Count(&stats.Failed)
	return stats
}

// ---------------------------------------------------------------------------
// WhatsApp campaigns
// ---------------------------------------------------------------------------

func (s *CampaignService) CreateWhatsApp(title, bodyText string, templateID *uuid.UUID, studentIDs []uuid.UUID) (*models.WhatsAppCampaign, error) {
	campaign := &models.WhatsAppCampaign{
		Title:      title,
		TemplateID: templateID,
		BodyText:   bodyText,
		Status:     models.CampaignStatusDraft,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(campaign).Error; err != nil {
			return err
		}
		return createWhatsAppLogs(tx, campaign.ID, studentIDs)
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) ListWhatsApp() ([]models.WhatsAppCampaign, error) {
	var campaigns []models.WhatsAppCampaign
	err := s.DB.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

func (s *CampaignService) GetWhatsApp(id uuid.UUID) (*models.WhatsAppCampaign, []models.WhatsAppLog, error) {
	var campaign models.WhatsAppCampaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCampaignNotFound
		}
		return nil, nil, err
	}
	var logs []models.WhatsAppLog
	err := s.DB.Preload("Student").Preload("Student.Profile").
		Where("campaign_id = ?", id).Find(&logs).Error
	return &campaign, logs, err
}

func (s *CampaignService) UpdateWhatsApp(id uuid.UUID, title, bodyText string, templateID *uuid.UUID, studentIDs []uuid.UUID) (*models.WhatsAppCampaign, error) {
	var campaign models.WhatsAppCampaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		campaign.Title = title
		campaign.BodyText = bodyText
		campaign.TemplateID = templateID
		if err := tx.Save(&campaign).Error; err != nil {
			return err
		}
		if campaign.Status == models.CampaignStatusDraft {
			if err := tx.Where("campaign_id = ?", id).Delete(&models.WhatsAppLog{}).Error; err != nil {
				return err
			}
			return createWhatsAppLogs(tx, id, studentIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) DeleteWhatsApp(id uuid.UUID) error {
	var campaign models.WhatsAppCampaign
	if err := s.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if campaign.Status == models.CampaignStatusCompleted {
		return ErrCampaignCompleted
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.WhatsAppLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WhatsAppCampaign{}, "id = ?", id).Error
	})
}

func (s *CampaignService) WhatsAppStats(id uuid.UUID) DeliveryStats {
	var stats DeliveryStats
	s.DB.Model(&models.WhatsAppLog{}).Where("campaign_id = ?", id).Count(&stats.Total)
	s.DB.Model(&models.WhatsAppLog{}).Where("campaign_id = ? AND status = ?", id, models.LogStatusSent).Count(&stats.Sent)
	s.DB.Model(&models.WhatsAppLog{}).Where("campaign_id = ? AND status = ?", id, models.LogStatusFailed).Count(&stats.Failed)
	return stats
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func createCallLogs(tx *gorm.DB, campaignID uuid.UUID, studentIDs []uuid.UUID) error {
	for _, studentID := range studentIDs {
		entry := models.CallLog{
			CampaignID: campaignID,
			StudentID:  studentID,
			Status:     models.LogStatusPending,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

func createEmailLogs(tx *gorm.DB, campaignID uuid.UUID, studentIDs []uuid.UUID) error {
	for _, studentID := range studentIDs {
		entry := models.EmailLog{
			CampaignID: campaignID,
			StudentID:  studentID,
			Status:     models.LogStatusPending,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

func createWhatsAppLogs(tx *gorm.DB, campaignID uuid.UUID, studentIDs []uuid.UUID) error {
	for _, studentID := range studentIDs {
		entry := models.WhatsAppLog{
			CampaignID: campaignID,
			StudentID:  studentID,
			Status:     models.LogStatusPending,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}
