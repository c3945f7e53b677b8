package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application level configuration.
//
// Values are resolved in three layers: the defaults below, an optional YAML
// file named by CONFIG_FILE, and finally environment variables.
type Config struct {
	Env              string        `yaml:"env" env:"APP_ENV"`
	ServerPort       string        `yaml:"server_port" env:"SERVER_PORT"`
	DBDriver         string        `yaml:"db_driver" env:"DB_DRIVER"`
	DatabaseDSN      string        `yaml:"database_dsn" env:"DATABASE_DSN"`
	ResetDB          bool          `yaml:"reset_db" env:"RESET_DB"`
	RedisAddr        string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisDB          int           `yaml:"redis_db" env:"REDIS_DB"`
	RedisPass        string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	JWTSecret        string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL"`
	OverviewCacheTTL time.Duration `yaml:"overview_cache_ttl" env:"OVERVIEW_CACHE_TTL"`
	UserCacheTTL     time.Duration `yaml:"user_cache_ttl" env:"USER_CACHE_TTL"`
	CORSOrigins      []string      `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL"`
	OTelEndpoint     string        `yaml:"otel_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SwaggerHost      string        `yaml:"swagger_host" env:"SWAGGER_HOST"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Env:              "development",
		ServerPort:       "8080",
		DBDriver:         DriverMySQL,
		DatabaseDSN:      "user:password@tcp(localhost:3306)/sheba?charset=utf8mb4&parseTime=True&loc=Local",
		RedisAddr:        "localhost:6379",
		JWTSecret:        "change-me",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		OverviewCacheTTL: 2 * time.Minute,
		UserCacheTTL:     5 * time.Minute,
		CORSOrigins:      []string{"http://localhost:3000"},
		LogLevel:         "info",
	}
}

// Load builds Config from defaults, the optional CONFIG_FILE and the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

// Validate checks settings that would make the server unusable.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == "change-me") {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
