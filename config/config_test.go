package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgresql://localhost:5432/footwear?sslmode=disable")
	t.Setenv("GO_ENV", "test")
}

func TestFromEnvDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, ExtractionSample, cfg.ExtractionMode)
	assert.Equal(t, "SF", cfg.OrderNumberPrefix)
	assert.Equal(t, SequenceDatabase, cfg.OrderSequenceBackend)
	assert.Equal(t, 24*time.Hour, cfg.UnlinkedDocumentTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.AuthEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_BACKEND", "S3")
	t.Setenv("AWS_S3_BUCKET", "footwear-docs")
	t.Setenv("ORDER_SEQUENCE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("UNLINKED_DOCUMENT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://erp.example.com, http://localhost:3000")
	t.Setenv("AUTH0_DOMAIN", "tenant.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StorageS3, cfg.StorageBackend)
	assert.Equal(t, SequenceRedis, cfg.OrderSequenceBackend)
	assert.Equal(t, 90*time.Minute, cfg.UnlinkedDocumentTTL)
	assert.Equal(t, []string{"https://erp.example.com", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AuthEnabled())
}

func TestFromEnvInvalidTTL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UNLINKED_DOCUMENT_TTL", "tomorrow")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DatabaseURL:          "postgres://db",
			DatabaseDriver:       DriverPostgres,
			StorageBackend:       StorageLocal,
			UploadDir:            "uploads",
			ExtractionMode:       ExtractionNone,
			OrderNumberPrefix:    "SF",
			OrderSequenceBackend: SequenceDatabase,
			UnlinkedDocumentTTL:  time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL is required"},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "DATABASE_DRIVER"},
		{"s3 without bucket", func(c *Config) { c.StorageBackend = StorageS3 }, "AWS_S3_BUCKET"},
		{"gcs without bucket", func(c *Config) { c.StorageBackend = StorageGCS }, "GCS_BUCKET"},
		{"unknown storage", func(c *Config) { c.StorageBackend = "ftp" }, "STORAGE_BACKEND"},
		{"documentai without processor", func(c *Config) { c.ExtractionMode = ExtractionDocumentAI }, "DOCUMENTAI_PROJECT_ID"},
		{"redis without url", func(c *Config) { c.OrderSequenceBackend = SequenceRedis }, "REDIS_URL"},
		{"empty prefix", func(c *Config) { c.OrderNumberPrefix = "" }, "ORDER_NUMBER_PREFIX"},
		{"zero ttl", func(c *Config) { c.UnlinkedDocumentTTL = 0 }, "UNLINKED_DOCUMENT_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
