package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationService owns the hiring pipeline: applying, the role-keyed
// status transitions, and the offer lifecycle.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// Apply creates an APPLIED application for (job, student). One per pair.
func (s *ApplicationService) Apply(jobID, studentID uuid.UUID) (*models.Application, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if !job.IsActive {
		return nil, ErrJobInactive
	}

	var count int64
	s.DB.Model(&models.Application{}).
		Where("job_id = ? AND student_id = ?", jobID, studentID).
		Count(&count)
	if count > 0 {
		return nil, ErrAlreadyApplied
	}

	app := &models.Application{
		JobID:     jobID,
		StudentID: studentID,
		Status:    models.AppStatusApplied,
	}
	if err := s.DB.Create(app).Error; err != nil {
		return nil, err
	}
	app.Job = &job
	return app, nil
}

func (s *ApplicationService) ListByStudent(studentID uuid.UUID, page, limit int) ([]models.Application, int64, error) {
	query := s.DB.Model(&models.Application{}).Where("student_id = ?", studentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := query.Preload("Job").
		Order("applied_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&apps).Error
	return apps, total, err
}

func (s *ApplicationService) GetForStudent(id, studentID uuid.UUID) (*models.Application, error) {
	app, err := s.get(id, "Job")
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, ErrNotOwner
	}
	return app, nil
}

func (s *ApplicationService) ListForJob(jobID uuid.UUID, statusFilter string, page, limit int) ([]models.Application, int64, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrJobNotFound
		}
		return nil, 0, err
	}

	query := s.DB.Model(&models.Application{}).Where("job_id = ?", jobID)
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := query.Preload("Student").Preload("Student.Profile").
		Order("applied_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&apps).Error
	return apps, total, err
}

// ---------------------------------------------------------------------------
// Admin actions
// ---------------------------------------------------------------------------

func (s *ApplicationService) Select(id uuid.UUID) (*models.Application, error) {
	return s.adminAdvance(id, models.AppStatusSelected)
}

func (s *ApplicationService) StartProcess(id uuid.UUID) (*models.Application, error) {
	return s.adminAdvance(id, models.AppStatusInProcess)
}

func (s *ApplicationService) ScheduleInterview(id uuid.UUID) (*models.Application, error) {
	return s.adminAdvance(id, models.AppStatusInterviewScheduled)
}

func (s *ApplicationService) Shortlist(id uuid.UUID) (*models.Application, error) {
	return s.adminAdvance(id, models.AppStatusShortlisted)
}

// ReleaseOffer moves SHORTLISTED → OFFER_RELEASED and stamps the response
// window. deadlineDays may be zero: the deadline then equals the release time.
func (s *ApplicationService) ReleaseOffer(id uuid.UUID, deadlineDays int) (*models.Application, error) {
	app, err := s.get(id, "Student", "Student.Profile")
	if err != nil {
		return nil, err
	}
	if !CanAdminTransition(app.Status, models.AppStatusOfferReleased) {
		return nil, transitionError(app.Status)
	}

	now := time.Now().UTC()
	deadline := now.AddDate(0, 0, deadlineDays)
	app.Status = models.AppStatusOfferReleased
	app.OfferReleasedAt = &now
	app.OfferDeadline = &deadline
	if err := s.DB.Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Reject is the cross-cutting admin override: allowed from any non-terminal
// state, terminal states stay frozen.
func (s *ApplicationService) Reject(id uuid.UUID) (*models.Application, error) {
	app, err := s.get(id, "Student", "Student.Profile")
	if err != nil {
		return nil, err
	}
	if !CanReject(app.Status) {
		return nil, transitionError(app.Status)
	}
	app.Status = models.AppStatusRejected
	if err := s.DB.Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// ---------------------------------------------------------------------------
// Student actions
// ---------------------------------------------------------------------------

func (s *ApplicationService) Withdraw(id, studentID uuid.UUID) (*models.Application, error) {
	app, err := s.get(id, "Job")
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, ErrNotOwner
	}
	if !CanStudentTransition(app.Status, models.AppStatusWithdrawn) {
		return nil, transitionError(app.Status)
	}
	app.Status = models.AppStatusWithdrawn
	if err := s.DB.Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// AcceptOffer moves OFFER_RELEASED → PLACED. The deadline is enforced here,
// at accept-time. The status change and the profile is_placed projection are
// committed in one transaction so they can never diverge.
func (s *ApplicationService) AcceptOffer(id, studentID uuid.UUID) (*models.Application, error) {
	app, err := s.get(id, "Job")
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, ErrNotOwner
	}
	if !CanStudentTransition(app.Status, models.AppStatusPlaced) {
		return nil, transitionError(app.Status)
	}
	now := time.Now().UTC()
	if app.OfferDeadline != nil && now.After(*app.OfferDeadline) {
		return nil, ErrOfferDeadlinePassed
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		app.Status = models.AppStatusPlaced
		app.OfferRespondedAt = &now
		if err := tx.Save(app).Error; err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).
			Where("user_id = ?", studentID).
			Update("is_placed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) DeclineOffer(id, studentID uuid.UUID) (*models.Application, error) {
	app, err := s.get(id, "Job")
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, ErrNotOwner
	}
	if !CanStudentTransition(app.Status, models.AppStatusOfferDeclined) {
		return nil, transitionError(app.Status)
	}
	now := time.Now().UTC()
	app.Status = models.AppStatusOfferDeclined
	app.OfferRespondedAt = &now
	if err := s.DB.Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (s *ApplicationService) adminAdvance(id uuid.UUID, target string) (*models.Application, error) {
	app, err := s.get(id, "Student", "Student.Profile")
	if err != nil {
		return nil, err
	}
	if !CanAdminTransition(app.Status, target) {
		return nil, transitionError(app.Status)
	}
	app.Status = target
	if err := s.DB.Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) get(id uuid.UUID, preloads ...string) (*models.Application, error) {
	query := s.DB
	for _, p := range preloads {
		query = query.Preload(p)
	}
	var app models.Application
	if err := query.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func transitionError(current string) error {
	return fmt.Errorf("%w: current status '%s' does not allow this action", ErrInvalidTransition, current)
}
