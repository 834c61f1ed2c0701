package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "PIPELINE_API_KEY", "CASHFLOW_DAYS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Empty(t, cfg.PipelineAPIKey)
	assert.Equal(t, 30, cfg.CashFlowDays)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PIPELINE_API_KEY", "secret")
	t.Setenv("CASHFLOW_DAYS", "90")
	t.Setenv("SNAPSHOT_SCHEDULE", "@hourly")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "secret", cfg.PipelineAPIKey)
	assert.Equal(t, 90, cfg.CashFlowDays)
	assert.Equal(t, "@hourly", cfg.SnapshotSchedule)
	assert.Same(t, cfg, Get())
}

func TestLoad_EmptyScheduleDisablesJob(t *testing.T) {
	t.Setenv("SNAPSHOT_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SnapshotSchedule)
}

func TestLoad_InvalidCashFlowDays(t *testing.T) {
	for _, v := range []string{"abc", "0", "-5"} {
		t.Setenv("CASHFLOW_DAYS", v)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.CashFlowDays, "CASHFLOW_DAYS=%s", v)
	}
}
