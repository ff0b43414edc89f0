package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "JWT_SECRET", "ADMIN_ROLE", "CORS_ORIGINS", "DISABLED_FEATURES", "CURRENCY_SYMBOL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "admin", cfg.AdminRole)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "€", cfg.CurrencySymbol)
	assert.NotEmpty(t, cfg.JWTSecret)
	for _, f := range engine.AllFeatures() {
		assert.True(t, cfg.Features.Enabled(f), "feature %s", f)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_ROLE", "finance_admin")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DISABLED_FEATURES", "charts,exports")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "n")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "finance_admin", cfg.AdminRole)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.False(t, cfg.Features.Enabled(engine.FeatureCharts))
	assert.False(t, cfg.Features.Enabled(engine.FeatureExports))
	assert.True(t, cfg.Features.Enabled(engine.FeatureReports))
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "require", cfg.DBSSLMode)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown_feature", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("DISABLED_FEATURES", "invoices")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production_requires_secret", func(t *testing.T) {
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DISABLED_FEATURES", "")
		_, err := Load()
		assert.Error(t, err)
	})
}
