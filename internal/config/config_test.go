package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	apperrors "github.com/agbru/grou/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("grou", nil, &buf)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Expr)
	assert.Equal(t, 0, cfg.Threshold)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.False(t, cfg.REPL)
	assert.Empty(t, buf.String())
}

func TestParseConfigFlags(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("grou", []string{
		"-expr", "0xff * 2",
		"-threshold", "16",
		"-parallel-threshold", "512",
		"-max-goroutines", "3",
		"-timeout", "10s",
		"-verify",
		"-metrics-addr", ":9090",
		"-log-json",
	}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "0xff * 2", cfg.Expr)
	assert.Equal(t, 16, cfg.Threshold)
	assert.Equal(t, 512, cfg.ParallelThreshold)
	assert.Equal(t, 3, cfg.MaxGoroutines)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verify)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.True(t, cfg.LogJSON)

	m := cfg.Multiplier()
	assert.Equal(t, 16, m.KaratsubaThreshold)
	assert.Equal(t, 512, m.ParallelThreshold)
	assert.Equal(t, 3, m.MaxGoroutines)
}

func TestParseConfigHelp(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("grou", []string{"-h"}, &buf)
	require.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, buf.String(), "-parallel-threshold")
}

func TestParseConfigRejectsPositionalArgs(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("grou", []string{"1", "+", "2"}, &buf)
	var cfgErr apperrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := AppConfig{Timeout: time.Second}
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		field  string
	}{
		{"negative threshold", func(c *AppConfig) { c.Threshold = -1 }, "threshold"},
		{"parallel threshold below off", func(c *AppConfig) { c.ParallelThreshold = -5 }, "parallel-threshold"},
		{"negative goroutines", func(c *AppConfig) { c.MaxGoroutines = -2 }, "max-goroutines"},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			var vErr apperrors.ValidationError
			require.True(t, errors.As(cfg.Validate(), &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	require.NoError(t, valid.Validate())

	off := valid
	off.ParallelThreshold = ParallelOff
	require.NoError(t, off.Validate())

	both := valid
	both.Verbose, both.Quiet = true, true
	var cfgErr apperrors.ConfigError
	require.True(t, errors.As(both.Validate(), &cfgErr))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GROU_THRESHOLD", "48")
	t.Setenv("GROU_PARALLEL_THRESHOLD", "not-a-number")
	t.Setenv("GROU_TIMEOUT", "90s")
	t.Setenv("GROU_VERIFY", "yes")
	t.Setenv("GROU_EXPR", "1 + 1")
	t.Setenv("GROU_QUIET", "maybe")

	var buf bytes.Buffer
	cfg, err := ParseConfig("grou", nil, &buf)
	require.NoError(t, err)

	assert.Equal(t, 48, cfg.Threshold)
	assert.Equal(t, 0, cfg.ParallelThreshold, "invalid values are ignored")
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verify)
	assert.Equal(t, "1 + 1", cfg.Expr)
	assert.False(t, cfg.Quiet, "unrecognized booleans keep the default")
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("GROU_THRESHOLD", "48")
	t.Setenv("GROU_VERBOSE", "true")

	var buf bytes.Buffer
	cfg, err := ParseConfig("grou", []string{"-threshold", "8", "-v=false"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Threshold)
	assert.False(t, cfg.Verbose)
}

func TestApplyAdaptiveThresholds(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveThresholds(AppConfig{})
	assert.Equal(t, EstimateOptimalKaratsubaThreshold(), cfg.Threshold)
	assert.Equal(t, EstimateOptimalParallelThreshold(), cfg.ParallelThreshold)
	assert.Positive(t, cfg.Threshold)
	assert.GreaterOrEqual(t, cfg.ParallelThreshold, 0)

	kept := ApplyAdaptiveThresholds(AppConfig{Threshold: 7, ParallelThreshold: 9})
	assert.Equal(t, 7, kept.Threshold)
	assert.Equal(t, 9, kept.ParallelThreshold)
}

func TestParallelOffSurvivesResolution(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg, err := ParseConfig("grou", []string{"-parallel-threshold", "-1"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, ParallelOff, cfg.ParallelThreshold)

	cfg = ApplyAdaptiveThresholds(cfg)
	assert.Equal(t, ParallelOff, cfg.ParallelThreshold)
	assert.Positive(t, cfg.Threshold)
	assert.Zero(t, cfg.Multiplier().ParallelThreshold)
}
