package database

import (
	"familygather-backend/config"
	"familygather-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres connection and migrates the schema. The handle is
// returned to the caller and passed down explicitly; there is no package-level
// client.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate auto-migrates all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Invitation{},
		&models.Event{},
		&models.Rsvp{},
		&models.Comment{},
		&models.Recipe{},
		&models.Game{},
		&models.AffiliateLink{},
	)
}
