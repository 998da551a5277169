// Package config loads service configuration from the environment.
// A .env file in the working directory is read first; real environment
// variables always win.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "dev-secret-change-me"

// Config groups all settings of the service.
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	DB     DBConfig
	JWT    JWTConfig
	Log    LogConfig
	Report ReportConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// IsDevelopment reports whether the service runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return ":" + c.Port
}

// DBConfig holds PostgreSQL settings.
type DBConfig struct {
	URL              string
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
}

// JWTConfig holds access token settings.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// ReportConfig holds report specific settings.
type ReportConfig struct {
	// AccessRule is a CEL expression evaluated per request (see security.AccessPolicy).
	AccessRule string
	// ItemCacheEnabled turns on the in-memory item tracking cache.
	ItemCacheEnabled bool
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	return fromViper(newViper())
}

// LoadJWT reads only the token settings, for tools that never touch the database.
func LoadJWT() (JWTConfig, error) {
	cfg := readConfig(newViper())
	if cfg.JWT.Secret == "" {
		return JWTConfig{}, errors.New("JWT_SECRET is required outside development")
	}
	return cfg.JWT, nil
}

func newViper() *viper.Viper {
	// Missing .env is fine: production passes real environment variables.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "sbreport")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "60s")
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_STATEMENT_TIMEOUT", "30s")
	v.SetDefault("JWT_ISSUER", "sbreport")
	v.SetDefault("JWT_TTL", "15m")
	v.SetDefault("REPORT_ACCESS_RULE", "true")
	v.SetDefault("ITEM_CACHE_ENABLED", true)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := readConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfig(v *viper.Viper) *Config {
	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Port:            v.GetString("APP_PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			URL:              v.GetString("DATABASE_URL"),
			MaxConns:         v.GetInt32("DB_MAX_CONNS"),
			MinConns:         v.GetInt32("DB_MIN_CONNS"),
			StatementTimeout: v.GetDuration("DB_STATEMENT_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Report: ReportConfig{
			AccessRule:       v.GetString("REPORT_ACCESS_RULE"),
			ItemCacheEnabled: v.GetBool("ITEM_CACHE_ENABLED"),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.IsDevelopment() {
		cfg.JWT.Secret = devJWTSecret
	}
	return cfg
}

// Validate checks required settings.
func (c *Config) Validate() error {
	var errs []error
	if c.DB.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.DB.MinConns > c.DB.MaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns))
	}
	return errors.Join(errs...)
}
