package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateforward/go-seqdetect"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seqdetect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Patterns)
	assert.Empty(t, cfg.Policy)
	assert.Equal(t, 1024, cfg.MatchLimit)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
patterns: ["101", "11"]
policy: non-overlapping
matches: true
match_limit: 16
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "11"}, cfg.Patterns)
	assert.Equal(t, "non-overlapping", cfg.Policy)
	assert.True(t, cfg.Matches)
	assert.Equal(t, 16, cfg.MatchLimit)
	require.NoError(t, cfg.Validate())
	level, _ := cfg.Level()
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "patterns: [\"101\"]\npolicy: overlapping\n")
	t.Setenv("SEQDETECT_PATTERNS", "1,01")
	t.Setenv("SEQDETECT_POLICY", "2")
	t.Setenv("SEQDETECT_TRACE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "01"}, cfg.Patterns)
	assert.Equal(t, "2", cfg.Policy)
	assert.True(t, cfg.Trace)
	policy, err := seqdetect.ParsePolicy(cfg.Policy)
	require.NoError(t, err)
	assert.Equal(t, seqdetect.NonOverlapping, policy)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "patterns: {"))
	assert.Error(t, err)

	t.Setenv("SEQDETECT_TRACE", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Patterns:   []string{"10", "", "1a"},
		Policy:     "sideways",
		MatchLimit: -1,
		LogLevel:   "loud",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, seqdetect.ErrInvalidPattern)
	assert.Contains(t, err.Error(), "patterns[1]")
	assert.Contains(t, err.Error(), "patterns[2]")
	assert.NotContains(t, err.Error(), "patterns[0]")
	assert.Contains(t, err.Error(), "unknown policy")
	assert.Contains(t, err.Error(), "match_limit")
	assert.Contains(t, err.Error(), "log_level")
}
