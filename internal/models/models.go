package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	// 'omitempty' keeps responses small when the profile isn't preloaded
	Profile      *Profile      `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Applications []Application `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the student golden record, 1:1 with users. Admins have none.
type Profile struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName   string    `gorm:"not null" json:"full_name"`
	CGPA       *float64  `json:"cgpa"`
	Branch     string    `gorm:"not null" json:"branch"`
	Department string    `json:"department"`
	Phone      string    `json:"phone"`
	ResumeURL  string    `json:"resume_url"`
	IsPlaced   bool      `gorm:"default:false" json:"is_placed"`
}

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName string    `gorm:"not null" json:"company_name"`
	Role        string    `gorm:"not null" json:"role"`
	CTC         string    `json:"ctc"` // stored as text: "12-15 LPA"
	MinCGPA     float64   `gorm:"default:0" json:"min_cgpa"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	JDLink      string    `json:"jd_link"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Applications []Application `gorm:"constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Application joins a student to a job. Unique per (job, student).
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_student" json:"job_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_student" json:"student_id"`
	Status    string    `gorm:"not null;default:'APPLIED'" json:"status"`
	AppliedAt time.Time `json:"applied_at"`

	// Offer lifecycle
	OfferReleasedAt  *time.Time `json:"offer_released_at"`
	OfferDeadline    *time.Time `json:"offer_deadline"`
	OfferRespondedAt *time.Time `json:"offer_responded_at"`

	Job     *Job  `json:"job,omitempty"`
	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	return nil
}

// Campaign is a voice call campaign. Delivery state lives in CallLog.
type Campaign struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	ScriptTemplate string    `gorm:"type:text;not null" json:"script_template"`
	Status         string    `gorm:"not null;default:'DRAFT'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`

	CallLogs []CallLog `gorm:"constraint:OnDelete:CASCADE" json:"call_logs,omitempty"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CallLog struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_campaign_student" json:"campaign_id"`
	StudentID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_campaign_student" json:"student_id"`
	TwilioSID         string    `gorm:"column:twilio_sid" json:"twilio_sid"`
	Status            string    `gorm:"not null;default:'PENDING'" json:"status"`
	RecordingURL      string    `json:"recording_url"`
	TranscriptionText string    `gorm:"type:text" json:"transcription_text"`
	Duration          *float64  `json:"duration"`
	ErrorMessage      string    `json:"error_message"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (c *CallLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type EmailCampaign struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	TemplateID *uuid.UUID `gorm:"type:uuid" json:"template_id"`
	Subject    string     `gorm:"not null" json:"subject"`
	BodyHTML   string     `gorm:"type:text;not null" json:"body_html"`
	Status     string     `gorm:"not null;default:'DRAFT'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`

	EmailLogs []EmailLog `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"email_logs,omitempty"`
}

func (c *EmailCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type EmailLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"campaign_id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	Status       string     `gorm:"not null;default:'PENDING'" json:"status"`
	ErrorMessage string     `json:"error_message"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `json:"created_at"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (l *EmailLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type WhatsAppCampaign struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	TemplateID *uuid.UUID `gorm:"type:uuid" json:"template_id"`
	BodyText   string     `gorm:"type:text;not null" json:"body_text"`
	Status     string     `gorm:"not null;default:'DRAFT'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`

	Logs []WhatsAppLog `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"logs,omitempty"`
}

func (c *WhatsAppCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type WhatsAppLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"campaign_id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	MessageSID   string     `gorm:"column:message_sid" json:"message_sid"`
	Status       string     `gorm:"not null;default:'PENDING'" json:"status"`
	ErrorMessage string     `json:"error_message"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `json:"created_at"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (l *WhatsAppLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type EmailTemplate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Subject    string    `gorm:"not null" json:"subject"`
	BodyHTML   string    `gorm:"type:text;not null" json:"body_html"`
	Variables  string    `json:"variables"` // comma-separated
	IsPrebuilt bool      `gorm:"default:false" json:"is_prebuilt"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *EmailTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type WhatsAppTemplate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	BodyText   string    `gorm:"type:text;not null" json:"body_text"`
	Variables  string    `json:"variables"`
	IsPrebuilt bool      `gorm:"default:false" json:"is_prebuilt"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *WhatsAppTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
