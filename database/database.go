package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warbler/models"
)

// Connect opens a database connection for the given DSN. A postgres
// DSN (postgres:// URL or key=value form) selects the postgres driver;
// anything else is treated as a sqlite file path.
func Connect(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	)
}

// Reset drops and recreates the full schema. Used by tests so that no
// entity survives from a previous run.
func Reset(db *gorm.DB) error {
	err := db.Migrator().DropTable(
		&models.Like{},
		&models.Follow{},
		&models.Message{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return Migrate(db)
}
