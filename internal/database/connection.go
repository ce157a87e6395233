// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/realestate-backend/internal/config"
	"github.com/javajoker/realestate-backend/internal/models"
)

// Initialize opens the relational store selected by driver, which must be
// postgres or sqlite.
func Initialize(driver string, cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var dialector gorm.Dialector
	switch driver {
	case config.StoreDriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.StoreDriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithField("driver", driver).Info("Database connection established")
	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

func Close(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Error closing database connection")
	} else {
		log.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Running database migrations")

	err := db.AutoMigrate(
		&models.Owner{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyTrace{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db, log)

	log.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB, log *logrus.Logger) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_properties_lower_name ON properties(LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_properties_lower_address ON properties(LOWER(address))",
		"CREATE INDEX IF NOT EXISTS idx_property_images_enabled ON property_images(id_property, enabled)",
		"CREATE INDEX IF NOT EXISTS idx_property_traces_sale ON property_traces(id_property, date_sale DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			log.WithError(err).WithField("index", index).Warn("Failed to create index")
		}
	}
}
