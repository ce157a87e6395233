package database

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/javajoker/realestate-backend/internal/config"
	"github.com/javajoker/realestate-backend/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestInitializeSQLiteAndMigrate(t *testing.T) {
	log := quietLogger()
	cfg := config.DatabaseConfig{
		SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}

	db, err := Initialize(config.StoreDriverSQLite, cfg, log)
	require.NoError(t, err)
	defer Close(db, log)

	require.NoError(t, RunMigrations(db, log))
	// Migrations are idempotent.
	require.NoError(t, RunMigrations(db, log))

	for _, model := range []interface{}{&models.Owner{}, &models.Property{}, &models.PropertyImage{}, &models.PropertyTrace{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex("properties", "idx_properties_lower_name"))
}

func TestInitializeUnsupportedDriver(t *testing.T) {
	_, err := Initialize("oracle", config.DatabaseConfig{}, quietLogger())
	assert.ErrorContains(t, err, "unsupported sql driver")
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Warn, gormLogLevel("warn"))
	assert.Equal(t, logger.Info, gormLogLevel("debug"))
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.StoreDriverSQLite},
		Database: config.DatabaseConfig{
			SQLitePath:   filepath.Join(t.TempDir(), "store.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			LogLevel:     "silent",
		},
	}

	backend, closeFn, err := OpenStore(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	defer closeFn()

	properties, err := backend.FindAll(context.Background(), models.PropertyCriteria{})
	require.NoError(t, err)
	assert.Empty(t, properties)
}

func TestOpenStoreUnsupported(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "redis"}}
	_, _, err := OpenStore(context.Background(), cfg, quietLogger())
	assert.ErrorContains(t, err, "unsupported store driver")
}
