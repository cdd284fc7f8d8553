// Package config loads server configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Pipeline strategies
const (
	StrategyFanOut = "fanout"
	StrategyBatch  = "batch"
)

// Config is the full server configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Pipeline    PipelineConfig
	Logging     LoggingConfig
	Environment string
}

// ServerConfig holds http listener settings
type ServerConfig struct {
	Port            int
	AllowOrigins    []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the configuration parameters for connecting to the document store.
type DatabaseConfig struct {
	Driver     string
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	UseConnStr bool
}

// AuthConfig holds session token and identity provider settings
type AuthConfig struct {
	SecretKey           string
	Issuer              string
	SessionTTL          time.Duration
	CookieName          string
	CookieSecure        bool
	IdentityUserInfoURL string
	IdentityTimeout     time.Duration
}

// PipelineConfig selects how applications are joined to jobs and counted
type PipelineConfig struct {
	Strategy    string
	Concurrency int
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads Config from the environment
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:            getEnvInt("PORT", 3000),
			AllowOrigins:    splitList(getEnv("ALLOW_ORIGIN", "*")),
			MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			URL:        getEnv("DB_CONNECTION_STR", ""),
			Host:       getEnv("DB_HOST", ""),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USERNAME", ""),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_DATABASE", ""),
			UseConnStr: getEnvBool("USE_CONNECTION_STR", false),
		},
		Auth: AuthConfig{
			SecretKey:           getEnv("SECRET_KEY", ""),
			Issuer:              getEnv("JWT_ISSUER", "career-linker"),
			SessionTTL:          getEnvDuration("SESSION_TTL", time.Hour),
			CookieName:          getEnv("SESSION_COOKIE", "token"),
			CookieSecure:        getEnvBool("COOKIE_SECURE", false),
			IdentityUserInfoURL: getEnv("IDENTITY_USERINFO_URL", "https://openidconnect.googleapis.com/v1/userinfo"),
			IdentityTimeout:     getEnvDuration("IDENTITY_TIMEOUT", 10*time.Second),
		},
		Pipeline: PipelineConfig{
			Strategy:    strings.ToLower(getEnv("PIPELINE_STRATEGY", StrategyFanOut)),
			Concurrency: getEnvInt("PIPELINE_CONCURRENCY", 8),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Auth.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}

	switch cfg.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if _, err := cfg.Database.DSN(); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}

	switch cfg.Pipeline.Strategy {
	case StrategyFanOut, StrategyBatch:
	default:
		return Config{}, fmt.Errorf("unknown PIPELINE_STRATEGY %q", cfg.Pipeline.Strategy)
	}

	return cfg, nil
}

// DSN returns the postgres connection string
func (d DatabaseConfig) DSN() (string, error) {
	if d.UseConnStr {
		if d.URL == "" {
			return "", fmt.Errorf("DB_CONNECTION_STR is empty")
		}
		return d.URL, nil
	}
	if d.Host == "" || d.Port == "" || d.User == "" || d.Password == "" || d.Name == "" {
		return "", fmt.Errorf("database configuration is incomplete")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name), nil
}

// IsProduction reports whether the server runs with production settings
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
