package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/models"
)

// New opens the Postgres connection and runs migrations plus reference-data
// seeding.
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	log.Printf("Connecting to database at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema and seeds the language table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.NutritionProfile{},
		&models.DailyNutritionLog{},
		&models.FoodAnalysis{},
		&models.Language{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	return SeedLanguages(db)
}

// SeedLanguages inserts the supported languages if they are not present.
// The unique constraint on code makes concurrent seeding harmless.
func SeedLanguages(db *gorm.DB) error {
	languages := []models.Language{
		{Code: "pt", Name: "Português"},
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Español"},
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&languages).Error
	if err != nil {
		return fmt.Errorf("failed to seed languages: %w", err)
	}

	return nil
}
