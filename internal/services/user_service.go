package services

import (
	"errors"

	"github.com/Mr-K2901/TnP-Portal/internal/auth"
	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers registration, login, the student profile and the
// admin roster view.
type UserService struct {
	DB     *gorm.DB
	Issuer *auth.TokenIssuer
}

func NewUserService(db *gorm.DB, issuer *auth.TokenIssuer) *UserService {
	return &UserService{DB: db, Issuer: issuer}
}

// RegisterInput carries the registration payload. Profile fields only
// apply to students; admins get no profile row.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
	FullName string
	Branch   string
	CGPA     *float64
	Phone    string
}

func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	var existing int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", in.Email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if in.Role == models.RoleStudent {
			profile := models.Profile{
				UserID:   user.ID,
				FullName: in.FullName,
				Branch:   in.Branch,
				CGPA:     in.CGPA,
				Phone:    in.Phone,
			}
			return tx.Create(&profile).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetWithProfile(user.ID)
}

// Login verifies credentials and issues an access token. The same error
// is returned for an unknown email and a wrong password.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.DB.Preload("Profile").First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.Issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *UserService) GetWithProfile(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Profile").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the provided fields to the student's own profile.
// is_placed is admin-controlled and never touched here.
func (s *UserService) UpdateProfile(userID uuid.UUID, updates map[string]interface{}) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	delete(updates, "is_placed")
	if len(updates) == 0 {
		return profile, nil
	}
	if err := s.DB.Model(profile).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// MarkPlaced flips is_placed for a student, outside the offer flow. Used
// by admins for placements that happened off-portal.
func (s *UserService) MarkPlaced(userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile.IsPlaced {
		return nil, ErrAlreadyPlaced
	}
	if err := s.DB.Model(profile).Update("is_placed", true).Error; err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// StudentFilter narrows the admin roster listing. Nil fields mean no
// filter on that attribute.
type StudentFilter struct {
	Branch     string
	Department string
	MinCGPA    *float64
	MaxCGPA    *float64
	IsPlaced   *bool
}

// StudentListItem is a roster row with derived fields: how many
// applications the student has and, if placed, which company placed them.
type StudentListItem struct {
	UserID            uuid.UUID `json:"user_id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Branch            string    `json:"branch"`
	Department        string    `json:"department"`
	CGPA              *float64  `json:"cgpa"`
	Phone             string    `json:"phone"`
	IsPlaced          bool      `json:"is_placed"`
	ApplicationsCount int64     `json:"applications_count"`
	PlacedCompany     *string   `json:"placed_company"`
}

func (s *UserService) ListStudents(filter StudentFilter) ([]StudentListItem, error) {
	query := s.DB.Model(&models.User{}).
		Select("users.id, users.email, profiles.full_name, profiles.branch, profiles.department, profiles.cgpa, profiles.phone, profiles.is_placed").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.role = ?", models.RoleStudent)

	if filter.Branch != "" {
		query = query.Where("profiles.branch = ?", filter.Branch)
	}
	if filter.Department != "" {
		query = query.Where("profiles.department = ?", filter.Department)
	}
	if filter.MinCGPA != nil {
		query = query.Where("profiles.cgpa >= ?", *filter.MinCGPA)
	}
	if filter.MaxCGPA != nil {
		query = query.Where("profiles.cgpa <= ?", *filter.MaxCGPA)
	}
	if filter.IsPlaced != nil {
		query = query.Where("profiles.is_placed = ?", *filter.IsPlaced)
	}

	type row struct {
		ID         uuid.UUID
		Email      string
		FullName   string
		Branch     string
		Department string
		CGPA       *float64
		Phone      string
		IsPlaced   bool
	}
	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	students := make([]StudentListItem, 0, len(rows))
	for _, r := range rows {
		item := StudentListItem{
			UserID:     r.ID,
			FullName:   r.FullName,
			Email:      r.Email,
			Branch:     r.Branch,
			Department: r.Department,
			CGPA:       r.CGPA,
			Phone:      r.Phone,
			IsPlaced:   r.IsPlaced,
		}
		s.DB.Model(&models.Application{}).Where("student_id = ?", r.ID).Count(&item.ApplicationsCount)

		// placed_company comes from the application that actually reached
		// PLACED, not from guessing at intermediate states.
		if r.IsPlaced {
			var placed models.Application
			err := s.DB.Preload("Job").
				Where("student_id = ? AND status = ?", r.ID, models.AppStatusPlaced).
				First(&placed).Error
			if err == nil && placed.Job != nil {
				company := placed.Job.CompanyName
				item.PlacedCompany = &company
			}
		}
		students = append(students, item)
	}
	return students, nil
}
