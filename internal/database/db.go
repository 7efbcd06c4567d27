package database

import (
	"log"

	"github.com/Mr-K2901/TnP-Portal/internal/config"
	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	if err := Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return db
}

// Migrate creates/updates all tables. Shared with tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.Application{},
		&models.Campaign{},
		&models.CallLog{},
		&models.EmailCampaign{},
		&models.EmailLog{},
		&models.WhatsAppCampaign{},
		&models.WhatsAppLog{},
		&models.EmailTemplate{},
		&models.WhatsAppTemplate{},
	)
}
