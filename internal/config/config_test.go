package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5*time.Second, cfg.Matching.UndoWindow)
	assert.Equal(t, 0.30, cfg.Matching.LikeProbability)
	assert.Equal(t, 0.75, cfg.Matching.SuperLikeProbability)
}

func TestLoadOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
matching:
  undo_window: 10s
  simulate_reciprocity: false
store:
  driver: redis
  redis_url: redis://localhost:6379/0
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Matching.UndoWindow)
	assert.False(t, cfg.Matching.SimulateReciprocity)
	assert.Equal(t, 0.30, cfg.Matching.LikeProbability)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoadEnvWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("DATABASE_URL", "postgres://localhost/cupid")
	t.Setenv("REDIS_URL", "")
	path := writeConfig(t, `
store:
  driver: postgres
  database_url: postgres://file/ignored
ai:
  gemini_api_key: from-file
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/cupid", cfg.Store.DatabaseURL)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed yaml", "matching: [", "failed to parse config file"},
		{"unknown driver", "store:\n  driver: mongo\n", `unknown store driver "mongo"`},
		{"redis without url", "store:\n  driver: redis\n", "requires redis_url"},
		{"postgres without url", "store:\n  driver: postgres\n", "requires database_url"},
		{"probability out of range", "matching:\n  like_probability: 1.5\n", "like_probability must be between 0 and 1"},
		{"zero undo window", "matching:\n  undo_window: 0s\n", "undo_window must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
