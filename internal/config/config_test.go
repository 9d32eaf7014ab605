package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlage/internal/config"
)

func TestOracleConfig_PrimaryConfig_LegacyFallback(t *testing.T) {
	cfg := config.OracleConfig{
		Provider:     "openai",
		APIKey:       "sk-legacy",
		BaseURL:      "https://llm.internal/v1",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  30,
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "openai", primary.Provider)
	assert.Equal(t, "sk-legacy", primary.APIKey)
	assert.Equal(t, "https://llm.internal/v1", primary.BaseURL)
	assert.Equal(t, "gpt-4o", primary.DefaultModel)
	assert.Equal(t, 30, primary.TimeoutSecs)
}

func TestOracleConfig_PrimaryConfig_ExplicitPrimary(t *testing.T) {
	cfg := config.OracleConfig{
		Provider: "legacy-should-be-ignored",
		Primary: config.OracleProviderConfig{
			Provider:     "openai",
			APIKey:       "sk-primary",
			DefaultModel: "gpt-4o-mini",
		},
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "openai", primary.Provider)
	assert.Equal(t, "sk-primary", primary.APIKey)
	assert.Equal(t, "gpt-4o-mini", primary.DefaultModel)
}

func TestOracleConfig_SecondaryConfig(t *testing.T) {
	cfg := config.OracleConfig{Provider: "openai"}
	assert.Nil(t, cfg.SecondaryConfig())

	cfg.Secondary = config.OracleProviderConfig{Provider: "openai", APIKey: "sk-secondary"}
	secondary := cfg.SecondaryConfig()
	require.NotNil(t, secondary)
	assert.Equal(t, "sk-secondary", secondary.APIKey)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Oracle.PrimaryConfig().Provider)
	assert.Empty(t, cfg.Oracle.PrimaryConfig().DefaultModel)
	assert.Equal(t, "static", cfg.Buildings.Source)
	assert.Equal(t, "noop", cfg.Archive.Provider)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Equal(t, 5*time.Minute, cfg.Pipeline.FileTimeout)
	assert.Equal(t, int64(20*1024*1024), cfg.Pipeline.MaxFileSizeBytes())
	assert.Empty(t, cfg.Email.Reviewers)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("UMLAGE_PIPELINE_CONCURRENCY", "0")
	t.Setenv("UMLAGE_EMAIL_REVIEWERS", "a@example.com, ,b@example.com")
	t.Setenv("UMLAGE_BUILDINGS_SOURCE", "postgres")
	t.Setenv("UMLAGE_ORACLE_SECONDARY_PROVIDER", "openai")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Pipeline.Concurrency)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Email.Reviewers)
	assert.Equal(t, "postgres", cfg.Buildings.Source)
	require.NotNil(t, cfg.Oracle.SecondaryConfig())
	assert.Equal(t, 120, cfg.Oracle.SecondaryConfig().TimeoutSecs)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}
