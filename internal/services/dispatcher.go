package services

import (
	"errors"
	"fmt"

	"github.com/Mr-K2901/TnP-Portal/internal/config"
	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/Mr-K2901/TnP-Portal/internal/worker"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dispatcher drives campaigns: it flips a campaign to RUNNING and enqueues
// an execution unit on the worker pool. The unit walks the campaign's
// PENDING delivery logs one by one, renders the template per recipient,
// invokes the provider, records the outcome, and paces between sends.
// Individual failures never abort the batch; a campaign with some FAILED
// logs is still COMPLETED once nothing is left pending.
type Dispatcher struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Voice    VoiceDialer
	Email    EmailSender
	WhatsApp WhatsAppSender
	Pool     *worker.Pool
}

func NewDispatcher(db *gorm.DB, cfg *config.Config, voice VoiceDialer, email EmailSender, whatsapp WhatsAppSender, pool *worker.Pool) *Dispatcher {
	return &Dispatcher{DB: db, Cfg: cfg, Voice: voice, Email: email, WhatsApp: whatsapp, Pool: pool}
}

// markRunning is the concurrent-start guard: a conditional update instead
// of read-then-write, so two interleaved starts cannot both win.
func (d *Dispatcher) markRunning(model interface{}, id uuid.UUID) error {
	res := d.DB.Model(model).
		Where("id = ? AND status <> ?", id, models.CampaignStatusRunning).
		Update("status", models.CampaignStatusRunning)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCampaignRunning
	}
	return nil
}

// session gives an execution unit its own data-access session, independent
// of the request that triggered it.
func (d *Dispatcher) session() *gorm.DB {
	return d.DB.Session(&gorm.Session{NewDB: true})
}

func (d *Dispatcher) loadStudent(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var student models.User
	if err := db.Preload("Profile").First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("student not found")
		}
		return nil, err
	}
	return &student, nil
}

// StudentVars are the recipient attributes available to {{token}}
// placeholders in campaign templates.
func StudentVars(student *models.User) map[string]string {
	vars := map[string]string{
		"student_name": "Student",
		"email":        student.Email,
		"branch":       "",
		"cgpa":         "",
	}
	if student.Profile != nil {
		if student.Profile.FullName != "" {
			vars["student_name"] = student.Profile.FullName
		}
		vars["branch"] = student.Profile.Branch
		if student.Profile.CGPA != nil {
			vars["cgpa"] = fmt.Sprintf("%g", *student.Profile.CGPA)
		}
	}
	return vars
}
