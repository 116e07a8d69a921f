package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stridefoot/footwear-erp-api/models"
)

// ConnectDatabase opens the database named by the configuration
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DatabaseDriver == DriverSQLite {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the schema for every model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
