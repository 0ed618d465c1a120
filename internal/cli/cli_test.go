package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/pdrpinto/gridsearch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = config.Config{
	Search:  config.SearchConfig{Workers: 2, MaxSteps: 100},
	Logging: config.LoggingConfig{Level: "info", Format: "text"},
}

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out, defaults)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Empty(t, cfg.ScenarioPath)
	assert.Equal(t, 24, cfg.Width)
	assert.Equal(t, 12, cfg.Height)
	assert.Equal(t, 8, cfg.Connectivity)
	assert.Equal(t, "octile", cfg.Metric)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 100, cfg.MaxSteps)
	assert.False(t, cfg.PacingSet)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{
		"-algorithm", "ALL", "-pacing", "0s", "-render", "-log-format", "JSON", "-log-level", "debug", "scenarios/",
	}, &out, defaults)
	require.NoError(t, err)

	assert.Equal(t, "scenarios/", cfg.ScenarioPath)
	assert.Equal(t, "all", cfg.Algorithm)
	assert.True(t, cfg.PacingSet)
	assert.Zero(t, cfg.Pacing)
	assert.True(t, cfg.Render)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseScenarioFlagWinsOverArgument(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-scenario", "a.hcl", "-name", "maze", "b.hcl"}, &out, defaults)
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.ScenarioPath)
	assert.Equal(t, "maze", cfg.ScenarioName)
}

func TestParseEnvPacingOverridesScenarios(t *testing.T) {
	withPacing := defaults
	withPacing.Search.Pacing = 50 * time.Millisecond

	var out bytes.Buffer
	cfg, _, err := Parse(nil, &out, withPacing)
	require.NoError(t, err)
	assert.True(t, cfg.PacingSet)
	assert.Equal(t, 50*time.Millisecond, cfg.Pacing)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out, defaults)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-max-steps")
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown flag", []string{"-fast"}, "flag provided but not defined: -fast"},
		{"bad log format", []string{"-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "trace"}, "invalid log-level"},
		{"bad algorithm", []string{"-algorithm", "greedy"}, "unknown algorithm"},
		{"bad connectivity", []string{"-connectivity", "6"}, "connectivity must be 4 or 8"},
		{"negative max steps", []string{"-max-steps", "-3"}, "max-steps must not be negative"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out, defaults)
			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Error(), tc.wantErr)
		})
	}
}
