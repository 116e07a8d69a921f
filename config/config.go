package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL    string
	DatabaseDriver string
	Port           string
	GoEnv          string
	LogLevel       string

	Auth0Domain   string
	Auth0Audience string

	StorageBackend     string
	UploadDir          string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	GCSBucket          string

	ExtractionMode        string
	DocumentAIProjectID   string
	DocumentAILocation    string
	DocumentAIProcessorID string

	OrderNumberPrefix    string
	OrderSequenceBackend string
	RedisURL             string

	UnlinkedDocumentTTL   time.Duration
	UnlinkedSweepSchedule string

	CORSAllowedOrigins []string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
	StorageGCS   = "gcs"

	ExtractionNone       = "none"
	ExtractionSample     = "sample"
	ExtractionDocumentAI = "documentai"

	SequenceDatabase = "database"
	SequenceRedis    = "redis"
)

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// In deployed environments variables are set directly
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment only
func FromEnv() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("UNLINKED_DOCUMENT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("UNLINKED_DOCUMENT_TTL: %w", err)
	}

	config := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
		Port:           getEnv("PORT", "8080"),
		GoEnv:          getEnv("GO_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),

		StorageBackend:     strings.ToLower(getEnv("STORAGE_BACKEND", StorageLocal)),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		GCSBucket:          getEnv("GCS_BUCKET", ""),

		ExtractionMode:        strings.ToLower(getEnv("EXTRACTION_MODE", ExtractionSample)),
		DocumentAIProjectID:   getEnv("DOCUMENTAI_PROJECT_ID", ""),
		DocumentAILocation:    getEnv("DOCUMENTAI_LOCATION", "us"),
		DocumentAIProcessorID: getEnv("DOCUMENTAI_PROCESSOR_ID", ""),

		OrderNumberPrefix:    getEnv("ORDER_NUMBER_PREFIX", "SF"),
		OrderSequenceBackend: strings.ToLower(getEnv("ORDER_SEQUENCE_BACKEND", SequenceDatabase)),
		RedisURL:             getEnv("REDIS_URL", ""),

		UnlinkedDocumentTTL:   ttl,
		UnlinkedSweepSchedule: getEnv("UNLINKED_SWEEP_SCHEDULE", "0 */15 * * * *"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DatabaseDriver)
	}

	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageS3:
		if c.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required for s3 storage")
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for gcs storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	switch c.ExtractionMode {
	case ExtractionNone, ExtractionSample:
	case ExtractionDocumentAI:
		if c.DocumentAIProjectID == "" || c.DocumentAIProcessorID == "" {
			return fmt.Errorf("DOCUMENTAI_PROJECT_ID and DOCUMENTAI_PROCESSOR_ID are required for documentai extraction")
		}
	default:
		return fmt.Errorf("unknown EXTRACTION_MODE %q", c.ExtractionMode)
	}

	switch c.OrderSequenceBackend {
	case SequenceDatabase:
	case SequenceRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis order sequence")
		}
	default:
		return fmt.Errorf("unknown ORDER_SEQUENCE_BACKEND %q", c.OrderSequenceBackend)
	}

	if c.OrderNumberPrefix == "" {
		return fmt.Errorf("ORDER_NUMBER_PREFIX must not be empty")
	}
	if c.UnlinkedDocumentTTL <= 0 {
		return fmt.Errorf("UNLINKED_DOCUMENT_TTL must be positive")
	}

	return nil
}

// AuthEnabled reports whether Auth0 token validation is configured
func (c *Config) AuthEnabled() bool {
	return c.Auth0Domain != "" && c.Auth0Audience != ""
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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
