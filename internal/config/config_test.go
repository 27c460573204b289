package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "go duration", value: "90s", want: 90 * time.Second},
		{name: "hours", value: "12h", want: 12 * time.Hour},
		{name: "bare seconds", value: "45", want: 45 * time.Second},
		{name: "garbage falls back", value: "soon", want: time.Minute},
		{name: "empty falls back", value: "", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_FLAG", "false")
	assert.False(t, getEnvAsBool("TEST_FLAG", true))

	t.Setenv("TEST_FLAG", "maybe")
	assert.True(t, getEnvAsBool("TEST_FLAG", true))
}

func TestLoadScheduler(t *testing.T) {
	t.Setenv("EXPIRY_SWEEP_CRON", "*/5 * * * *")
	t.Setenv("EXPIRY_SWEEP_TIMEOUT", "30s")
	t.Setenv("EXPIRY_SWEEP_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "*/5 * * * *", cfg.Scheduler.ExpirySpec)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.SweepTimeout)
	assert.False(t, cfg.Scheduler.Enabled)
}

func TestLocation(t *testing.T) {
	cfg := &Config{App: AppConfig{Timezone: "Asia/Jakarta"}}
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())

	cfg.App.Timezone = "Nowhere/Special"
	assert.Equal(t, time.UTC, cfg.Location())
}
