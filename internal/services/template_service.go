package services

import (
	"errors"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateService manages reusable campaign templates. The pre-built set
// is seeded lazily the first time templates are listed; seeded templates
// can be used but never edited or deleted.
type TemplateService struct {
	DB *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{DB: db}
}

// ListEmail returns all email templates, pre-built first then newest
// custom ones, seeding the pre-built set if it is missing.
func (s *TemplateService) ListEmail() ([]models.EmailTemplate, error) {
	var prebuiltCount int64
	if err := s.DB.Model(&models.EmailTemplate{}).Where("is_prebuilt = ?", true).Count(&prebuiltCount).Error; err != nil {
		return nil, err
	}
	if prebuiltCount == 0 {
		for i := range prebuiltEmailTemplates {
			tpl := prebuiltEmailTemplates[i]
			if err := s.DB.Create(&tpl).Error; err != nil {
				return nil, err
			}
		}
	}

	var templates []models.EmailTemplate
	err := s.DB.Order("is_prebuilt DESC, created_at DESC").Find(&templates).Error
	return templates, err
}

func (s *TemplateService) GetEmail(id uuid.UUID) (*models.EmailTemplate, error) {
	var tpl models.EmailTemplate
	if err := s.DB.First(&tpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

func (s *TemplateService) CreateEmail(name, subject, bodyHTML, variables string) (*models.EmailTemplate, error) {
	tpl := &models.EmailTemplate{
		Name:      name,
		Subject:   subject,
		BodyHTML:  bodyHTML,
		Variables: variables,
	}
	if err := s.DB.Create(tpl).Error; err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *TemplateService) UpdateEmail(id uuid.UUID, name, subject, bodyHTML, variables string) (*models.EmailTemplate, error) {
	tpl, err := s.GetEmail(id)
	if err != nil {
		return nil, err
	}
	if tpl.IsPrebuilt {
		return nil, ErrTemplatePrebuilt
	}
	tpl.Name = name
	tpl.Subject = subject
	tpl.BodyHTML = bodyHTML
	tpl.Variables = variables
	if err := s.DB.Save(tpl).Error; err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *TemplateService) DeleteEmail(id uuid.UUID) error {
	tpl, err := s.GetEmail(id)
	if err != nil {
		return err
	}
	if tpl.IsPrebuilt {
		return ErrTemplatePrebuilt
	}
	return s.DB.Delete(&models.EmailTemplate{}, "id = ?", id).Error
}

func (s *TemplateService) ListWhatsApp() ([]models.WhatsAppTemplate, error) {
	var templates []models.WhatsAppTemplate
	err := s.DB.Order("is_prebuilt DESC, created_at DESC").Find(&templates).Error
	return templates, err
}

func (s *TemplateService) CreateWhatsApp(name, bodyText, variables string) (*models.WhatsAppTemplate, error) {
	tpl := &models.WhatsAppTemplate{
		Name:      name,
		BodyText:  bodyText,
		Variables: variables,
	}
	if err := s.DB.Create(tpl).Error; err != nil {
		return nil, err
	}
	return tpl, nil
}
