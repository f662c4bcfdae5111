package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig([]string{"-log", "MatchLog.txt"}, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "MatchLog.txt", cfg.LogPath)
	assert.Nil(t, cfg.Hands)
	assert.Equal(t, modeJSON, cfg.Mode)
	assert.Equal(t, "match.json", cfg.OutputPath)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.FailFast)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	cfg, err := loadConfig(nil, envFrom(map[string]string{
		"LOG":       "/logs/MatchLog.txt",
		"HAND":      "200",
		"MODE":      "database",
		"DB":        "hands.db",
		"LOG_LEVEL": "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/logs/MatchLog.txt", cfg.LogPath)
	assert.Equal(t, []int{200}, cfg.Hands)
	assert.Equal(t, modeDatabase, cfg.Mode)
	assert.Equal(t, "hands.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := loadConfig(
		[]string{"-log", "flag.txt", "-hand", "1, 3", "-workers", "2", "-fail-fast", "-max-failures", "5"},
		envFrom(map[string]string{"LOG": "env.txt", "HAND": "7"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "flag.txt", cfg.LogPath)
	assert.Equal(t, []int{1, 3}, cfg.Hands)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, 5, cfg.MaxFailures)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing log", nil},
		{"unknown mode", []string{"-log", "x", "-mode", "csv"}},
		{"database without path", []string{"-log", "x", "-mode", "database"}},
		{"unknown driver", []string{"-log", "x", "-mode", "database", "-out", "a.db", "-driver", "pg"}},
		{"empty output", []string{"-log", "x", "-output", ""}},
		{"zero workers", []string{"-log", "x", "-workers", "0"}},
		{"negative budget", []string{"-log", "x", "-max-failures", "-1"}},
		{"bad hand", []string{"-log", "x", "-hand", "first"}},
		{"negative hand", []string{"-log", "x", "-hand", "-2"}},
		{"unknown flag", []string{"-log", "x", "-verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.args, envFrom(nil))
			assert.Error(t, err)
		})
	}
}

func TestParseHandSelection(t *testing.T) {
	for _, s := range []string{"", "all", "ALL", "  all "} {
		hands, err := parseHandSelection(s)
		require.NoError(t, err)
		assert.Nil(t, hands, s)
	}

	hands, err := parseHandSelection("0,2,,5")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5}, hands)

	_, err = parseHandSelection(",")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("POKERVR_TEST_LOG=from-dotenv.txt\n"), 0o644))
	t.Setenv("POKERVR_TEST_LOG", "")
	os.Unsetenv("POKERVR_TEST_LOG")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-dotenv.txt", os.Getenv("POKERVR_TEST_LOG"))
}
