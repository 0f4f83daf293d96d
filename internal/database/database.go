package database

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"hostmaster/internal/config"
	"hostmaster/internal/models"
)

// Open initializes the database connection and migrates the schema. The
// returned handle is passed explicitly into each store; there is no package
// global.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB

	switch cfg.Type {
	case "sqlite":
		// Use pure Go SQLite driver (modernc.org/sqlite)
		sqlDB, err := sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		db, err = gorm.Open(sqlite.Dialector{
			Conn: sqlDB,
		}, &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GORM: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	// Auto migrate the schema
	if err := db.AutoMigrate(
		&models.HostingRecord{},
		&models.SettingsBlob{},
		&models.TeamMember{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
