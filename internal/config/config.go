// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      ServerConfig
	Store       StoreConfig
	Mongo       MongoConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	I18n        I18nConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string `env:"SERVER_PORT" envDefault:"5228"`
	Host         string `env:"SERVER_HOST" envDefault:""`
	ReadTimeout  int    `env:"SERVER_READ_TIMEOUT" envDefault:"15"`
	WriteTimeout int    `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"`
	IdleTimeout  int    `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"mongo"`
}

type MongoConfig struct {
	URI                      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database                 string `env:"MONGO_DATABASE" envDefault:"RealEstateDb"`
	PropertiesCollection     string `env:"MONGO_COLLECTION_PROPERTIES" envDefault:"Properties"`
	OwnersCollection         string `env:"MONGO_COLLECTION_OWNERS" envDefault:"Owners"`
	PropertyImagesCollection string `env:"MONGO_COLLECTION_PROPERTY_IMAGES" envDefault:"PropertyImages"`
	PropertyTracesCollection string `env:"MONGO_COLLECTION_PROPERTY_TRACES" envDefault:"PropertyTraces"`
	ConnectTimeout           int    `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10"`
}

type DatabaseConfig struct {
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT" envDefault:"5432"`
	User         string `env:"DB_USER" envDefault:"postgres"`
	Password     string `env:"DB_PASSWORD"`
	Database     string `env:"DB_NAME" envDefault:"real_estate"`
	SSLMode      string `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	MaxLifetime  int    `env:"DB_MAX_LIFETIME" envDefault:"300"`
	LogLevel     string `env:"DB_LOG_LEVEL" envDefault:"silent"`
	SQLitePath   string `env:"SQLITE_PATH" envDefault:"real_estate.db"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	Burst             int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

type I18nConfig struct {
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// ClientConfig configures the browse command.
type ClientConfig struct {
	APIBaseURL string `env:"PROPERTY_API_URL" envDefault:"http://localhost:5228/api/Property"`
	CacheFile  string `env:"PROPERTY_CACHE_FILE"`
	PageSize   int    `env:"BROWSE_PAGE_SIZE" envDefault:"6"`
	Timeout    int    `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"warn"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo, StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}

	if c.Store.Driver == StoreDriverPostgres && c.Database.Password == "" && c.IsProduction() {
		return fmt.Errorf("database password is required in production")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	config := &ClientConfig{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.CacheFile == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		config.CacheFile = filepath.Join(dir, "realestate", "property-cache-v1.json")
	}

	if config.PageSize < 1 {
		return nil, fmt.Errorf("BROWSE_PAGE_SIZE must be positive")
	}

	return config, nil
}
