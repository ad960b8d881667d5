package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beacon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
env: production
http:
  listen_addr: ":9090"
log:
  level: debug
analytics:
  event_token: amp-key
  traffic_token: UA-1234-5
  http_timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTP.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "amp-key", cfg.Analytics.EventToken)
	assert.Equal(t, "UA-1234-5", cfg.Analytics.TrafficToken)
	assert.Equal(t, EventBackendAmplitude, cfg.Analytics.EventBackend)
	assert.Equal(t, 3*time.Second, cfg.Analytics.HTTPTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
analytics:
  event_token: from-file
`)
	t.Setenv("BEACON_EVENT_ANALYTICS_TOKEN", "from-env")
	t.Setenv("BEACON_EVENT_BACKEND", "segment")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Analytics.EventToken)
	assert.Equal(t, EventBackendSegment, cfg.Analytics.EventBackend)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("BEACON_TRAFFIC_ANALYTICS_TOKEN", "UA-1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "UA-1", cfg.Analytics.TrafficToken)
	assert.Equal(t, ":8080", cfg.HTTP.ListenAddr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("should fail without any token", func(t *testing.T) {
		path := writeConfig(t, "env: local\n")

		_, err := Load(path)
		assert.ErrorContains(t, err, "is required")
	})

	t.Run("should fail for an unknown backend", func(t *testing.T) {
		t.Setenv("BEACON_EVENT_ANALYTICS_TOKEN", "key")
		t.Setenv("BEACON_EVENT_BACKEND", "mixpanel")

		_, err := Load("")
		assert.ErrorContains(t, err, `unknown event backend "mixpanel"`)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
