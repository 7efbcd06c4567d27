package services

import (
	"errors"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

type JobInput struct {
	CompanyName string
	Role        string
	CTC         string
	MinCGPA     float64
	IsActive    *bool
	JDLink      string
	Description string
}

func (s *JobService) Create(in JobInput) (*models.Job, error) {
	job := &models.Job{
		CompanyName: in.CompanyName,
		Role:        in.Role,
		CTC:         in.CTC,
		MinCGPA:     in.MinCGPA,
		IsActive:    true,
		JDLink:      in.JDLink,
		Description: in.Description,
	}
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
	if err := s.DB.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// Update applies a partial update. Only keys present in updates change.
func (s *JobService) Update(id uuid.UUID, updates map[string]interface{}) (*models.Job, error) {
	job, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(job).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.get(id)
}

// Delete removes a job and, via cascade, every application against it.
func (s *JobService) Delete(id uuid.UUID) error {
	job, err := s.get(id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(job).Error
	})
}

// List pages through jobs newest first. Students only ever see active
// jobs; admins can toggle activeOnly.
func (s *JobService) List(role string, activeOnly bool, page, limit int) ([]models.Job, int64, error) {
	query := s.DB.Model(&models.Job{})
	if role == models.RoleStudent || activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&jobs).Error
	return jobs, total, err
}

// Get returns one job. Inactive jobs are hidden from students, reported
// as not found rather than forbidden.
func (s *JobService) Get(id uuid.UUID, role string) (*models.Job, error) {
	job, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if role == models.RoleStudent && !job.IsActive {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *JobService) get(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}
