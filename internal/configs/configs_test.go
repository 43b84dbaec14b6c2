package configs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pulsehub/internal/configs"
)

func setRequiredStorageEnv(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "pulsehub-assets")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "minio")
	t.Setenv("S3_SECRET_ACCESS_KEY", "minio123")
}

func TestLoadConfig(t *testing.T) {
	t.Run("it should apply development defaults", func(t *testing.T) {
		setRequiredStorageEnv(t)
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("PORT", "")
		t.Setenv("ALLOWED_ORIGINS", "")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DATABASE_URL", "")

		cfg, err := configs.LoadConfig()
		require.NoError(t, err)
		require.True(t, cfg.IsDevelopment())
		require.Equal(t, 8080, cfg.Port)
		require.NotEmpty(t, cfg.JWTSecret)
		require.NotEmpty(t, cfg.DatabaseDSN)
	})

	t.Run("it should parse allowed origins as a comma separated list", func(t *testing.T) {
		setRequiredStorageEnv(t)
		t.Setenv("ENVIRONMENT", "development")
		t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

		cfg, err := configs.LoadConfig()
		require.NoError(t, err)
		require.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
	})

	t.Run("it should reject an invalid port", func(t *testing.T) {
		setRequiredStorageEnv(t)
		t.Setenv("PORT", "not-a-port")

		_, err := configs.LoadConfig()
		require.Error(t, err)
	})

	t.Run("it should reject a privileged port", func(t *testing.T) {
		setRequiredStorageEnv(t)
		t.Setenv("PORT", "80")

		_, err := configs.LoadConfig()
		require.Error(t, err)
	})

	t.Run("it should require a jwt secret outside development", func(t *testing.T) {
		setRequiredStorageEnv(t)
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DATABASE_URL", "postgres://app@db:5432/pulsehub")

		_, err := configs.LoadConfig()
		require.Error(t, err)
	})

	t.Run("it should require storage credentials", func(t *testing.T) {
		setRequiredStorageEnv(t)
		t.Setenv("S3_BUCKET_NAME", "")

		_, err := configs.LoadConfig()
		require.Error(t, err)
	})
}
