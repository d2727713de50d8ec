package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_URL", "API_TIMEOUT", "PROFILE_TIMEOUT", "TOKEN_FILE", "LOG_LEVEL", "LOG_PRETTY", "REQUIRE_SEARCH_FILTER", "NATS_URL", "NATS_STREAM", "NATS_SUBJECT_PREFIX"} {
		t.Setenv(EnvPrefix+key, "")
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "gridiron.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Session.ProfileTimeout)
	assert.NotEmpty(t, cfg.Session.TokenFile)
	assert.False(t, cfg.Leagues.RequireSearchFilter)
	assert.Empty(t, cfg.Audit.NATSURL)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
}

func TestLoadYAMLKeepsDefaultsForMissingKeys(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
api:
  base_url: https://fantasy.example.com
  timeout: 5s
leagues:
  require_search_filter: true
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://fantasy.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Session.ProfileTimeout)
	assert.True(t, cfg.Leagues.RequireSearchFilter)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "api:\n  base_url: https://fantasy.example.com\n")
	t.Setenv(EnvPrefix+"API_URL", "http://127.0.0.1:9000")
	t.Setenv(EnvPrefix+"PROFILE_TIMEOUT", "2s")
	t.Setenv(EnvPrefix+"REQUIRE_SEARCH_FILTER", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Session.ProfileTimeout)
	assert.True(t, cfg.Leagues.RequireSearchFilter)
}

func TestDotEnvNextToConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: warn\n")
	tokenFile := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GRIDIRON_TOKEN_FILE="+tokenFile+"\n"), 0o600))
	// godotenv never overrides variables that are already set
	require.NoError(t, os.Unsetenv(EnvPrefix+"TOKEN_FILE"))
	t.Cleanup(func() { _ = os.Unsetenv(EnvPrefix + "TOKEN_FILE") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tokenFile, cfg.Session.TokenFile)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad url", yaml: "api:\n  base_url: localhost:8000\n"},
		{name: "bad timeout", env: map[string]string{"API_TIMEOUT": "soon"}},
		{name: "negative timeout", yaml: "api:\n  timeout: -1s\n"},
		{name: "bad level", yaml: "log:\n  level: loud\n"},
		{name: "bad bool", env: map[string]string{"REQUIRE_SEARCH_FILTER": "maybe"}},
		{name: "nats without prefix", yaml: "audit:\n  nats_url: nats://localhost:4222\n  subject_prefix: \"\"\n"},
		{name: "malformed yaml", yaml: "api: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(EnvPrefix+key, value)
			}
			_, err := Load(writeConfig(t, t.TempDir(), tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
