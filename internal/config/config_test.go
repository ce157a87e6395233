package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "5228", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "RealEstateDb", cfg.Mongo.Database)
	assert.Equal(t, "PropertyTraces", cfg.Mongo.Collections().PropertyTraces)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MONGO_DATABASE=FromDotEnv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MONGO_DATABASE") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "FromDotEnv", cfg.Mongo.Database)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("STORE_DRIVER", "cassandra")
	_, err := Load()
	assert.ErrorContains(t, err, "unsupported store driver")

	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("ENVIRONMENT", "production")
	_, err = Load()
	assert.ErrorContains(t, err, "database password is required")

	t.Setenv("DB_PASSWORD", "secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadInvalidValue(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse environment")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "re", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=re sslmode=disable", d.DSN())
}

func TestLoadClient(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PROPERTY_CACHE_FILE", "/tmp/cache.json")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cache.json", cfg.CacheFile)
	assert.Equal(t, 6, cfg.PageSize)

	t.Setenv("BROWSE_PAGE_SIZE", "0")
	_, err = LoadClient()
	assert.Error(t, err)
}
