// Package config loads process-wide settings from the environment.
//
// A .env file, when present, is loaded by the caller with godotenv before
// Load runs; real environment variables always win over it.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"

	StorageDisk = "disk"
	StorageS3   = "s3"
)

// Config holds runtime settings for the API server.
//
// JWTSecret signs and verifies bearer tokens. It has no default and must
// never be logged; use Config.Redacted for diagnostics.
type Config struct {
	Port     int    `envconfig:"APP_PORT" default:"8080"`
	DBDriver string `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN    string `envconfig:"DB_DSN"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"disk"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`

	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
	S3Prefix    string `envconfig:"S3_PREFIX" default:"documents/"`

	SweepSchedule string        `envconfig:"SWEEP_SCHEDULE" default:"@every 1h"`
	SweepGrace    time.Duration `envconfig:"SWEEP_GRACE" default:"1h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}

	switch c.DBDriver {
	case DriverPostgres, DriverMySQL:
		if c.DBDSN == "" {
			return fmt.Errorf("config: DB_DSN is required for driver %q", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.StorageBackend {
	case StorageDisk:
		if c.UploadDir == "" {
			return fmt.Errorf("config: UPLOAD_DIR is required for disk storage")
		}
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("config: unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// Redacted returns key/value pairs safe to log at startup.
func (c *Config) Redacted() []any {
	return []any{
		"port", c.Port,
		"db_driver", c.DBDriver,
		"storage", c.StorageBackend,
		"token_ttl", c.TokenTTL.String(),
		"sweep_schedule", c.SweepSchedule,
		"cors_origins", c.CORSOrigins,
	}
}
