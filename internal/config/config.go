package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"portfolio-backend/internal/infrastructure/database"
)

// Config holds the whole application configuration, populated from
// environment variables. One instance is built at process start and
// injected everywhere; nothing reads the environment after Load.
type Config struct {
	App      AppConfig
	Docstore DocstoreConfig
	Database database.Config
	Cache    CacheConfig
	Session  SessionConfig
	Identity IdentityConfig
	MinIO    MinIOConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	AllowOrigin string
}

type DocstoreConfig struct {
	Driver string // postgres | memory
}

type CacheConfig struct {
	Driver   string // redis | memory
	Host     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	SecureCookie bool
}

type IdentityConfig struct {
	Provider string // rest | static

	// rest verifier
	Endpoint string
	APIKey   string

	// static verifier (development)
	AdminEmail        string
	AdminPasswordHash string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const defaultSessionSecret = "change-me-in-production"

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Portfolio API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			AllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "http://localhost:3000"),
		},
		Docstore: DocstoreConfig{
			Driver: getEnv("DOCSTORE_DRIVER", "postgres"),
		},
		Database: database.Config{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_NAME", "portfolio"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:       int32(getEnvInt("DB_MIN_CONNS", 2)),
			ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Driver:   getEnv("CACHE_DRIVER", "redis"),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", defaultSessionSecret),
			TTL:          getEnvDuration("SESSION_TTL", 5*24*time.Hour),
			SecureCookie: getEnv("APP_ENV", "development") == "production",
		},
		Identity: IdentityConfig{
			Provider:          getEnv("IDENTITY_PROVIDER", "static"),
			Endpoint:          getEnv("IDENTITY_ENDPOINT", ""),
			APIKey:            getEnv("IDENTITY_API_KEY", ""),
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "portfolio"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
		if c.Identity.Provider == "static" && c.Identity.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set when using the static identity provider in production")
		}
	}

	switch c.Docstore.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown DOCSTORE_DRIVER %q", c.Docstore.Driver)
	}
	switch c.Cache.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", c.Cache.Driver)
	}
	switch c.Identity.Provider {
	case "rest":
		if c.Identity.Endpoint == "" {
			return fmt.Errorf("IDENTITY_ENDPOINT must be set for the rest identity provider")
		}
	case "static":
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.Identity.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
