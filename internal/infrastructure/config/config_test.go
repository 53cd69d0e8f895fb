package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	t.Run("app defaults", func(t *testing.T) {
		assert.Equal(t, "kvk-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("report defaults", func(t *testing.T) {
		assert.Equal(t, 8, cfg.Report.MaxConcurrentFetches)
		assert.Equal(t, "Asia/Kolkata", cfg.Report.Timezone)
		assert.Equal(t, 60*time.Second, cfg.Report.RenderTimeout)

		loc, err := cfg.Report.Location()
		require.NoError(t, err)
		assert.Equal(t, "Asia/Kolkata", loc.String())
	})

	t.Run("storage defaults to stub", func(t *testing.T) {
		assert.Equal(t, "stub", cfg.Storage.Provider)
		assert.Equal(t, "reports", cfg.Storage.KeyPrefix)
	})
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("KVK_DATABASE_HOST", "db.internal")
	t.Setenv("KVK_REPORT_MAX_CONCURRENT_FETCHES", "16")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 16, cfg.Report.MaxConcurrentFetches)
}

func TestValidate(t *testing.T) {
	t.Run("production requires jwt secret", func(t *testing.T) {
		t.Setenv("KVK_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		t.Setenv("KVK_REPORT_TIMEZONE", "Mars/Olympus")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "report.timezone")
	})

	t.Run("s3 provider requires bucket", func(t *testing.T) {
		t.Setenv("KVK_STORAGE_PROVIDER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", DBName: "kvk", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=kvk sslmode=disable",
		c.DSN())
}
