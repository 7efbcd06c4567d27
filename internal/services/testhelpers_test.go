package services

import (
	"testing"
	"time"

	"github.com/Mr-K2901/TnP-Portal/internal/config"
	"github.com/Mr-K2901/TnP-Portal/internal/database"
	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// openTestDB gives each test an isolated in-memory database with the
// full schema. A single connection keeps every session on the same
// in-memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createStudent(t *testing.T, db *gorm.DB, email, name, phone string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleStudent,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	profile := &models.Profile{
		UserID:   user.ID,
		FullName: name,
		Branch:   "CSE",
		Phone:    phone,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	user.Profile = profile
	return user
}

func createJob(t *testing.T, db *gorm.DB, company string, active bool) *models.Job {
	t.Helper()
	job := &models.Job{
		CompanyName: company,
		Role:        "Software Engineer",
		CTC:         "12-15 LPA",
		IsActive:    active,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func appStatus(t *testing.T, db *gorm.DB, id uuid.UUID) string {
	t.Helper()
	var app models.Application
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		t.Fatalf("load application: %v", err)
	}
	return app.Status
}

// waitFor polls until the condition holds or the deadline expires.
// Campaign execution units run on pool workers, so tests wait on
// observable state instead of sleeping a fixed amount.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

// testConfig zeroes the pacing delays so campaign tests finish fast.
func testConfig() *config.Config {
	return &config.Config{
		OfferDeadlineDays: 7,
		DispatchWorkers:   2,
	}
}
