package app

import (
	"fmt"
	"time"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridgen"
)

// AllAlgorithms runs the four strategies back to back on the same grid.
const AllAlgorithms = "all"

// Config holds everything a single CLI invocation needs.
type Config struct {
	ScenarioPath string
	ScenarioName string
	Algorithm    string

	Width        int
	Height       int
	Seed         int64
	Threshold    float64
	Connectivity int
	Metric       string

	Pacing    time.Duration
	PacingSet bool // Pacing overrides the scenario's own pacing
	Workers   int
	MaxSteps  int
	Render    bool

	LogLevel  string
	LogFormat string
}

// NewConfig validates cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Algorithm != "" && cfg.Algorithm != AllAlgorithms {
		if _, err := gridsearch.ParseAlgorithm(cfg.Algorithm); err != nil {
			return nil, err
		}
	}
	if cfg.ScenarioPath == "" {
		if cfg.Width <= 0 || cfg.Height <= 0 {
			return nil, fmt.Errorf("width and height must be positive, got %dx%d", cfg.Width, cfg.Height)
		}
		if cfg.Connectivity != int(gridgen.Four) && cfg.Connectivity != int(gridgen.Eight) {
			return nil, fmt.Errorf("connectivity must be 4 or 8, got %d", cfg.Connectivity)
		}
		if _, err := gridgen.ParseMetric(cfg.Metric); err != nil {
			return nil, err
		}
	}
	if cfg.Pacing < 0 {
		return nil, fmt.Errorf("pacing must not be negative, got %s", cfg.Pacing)
	}
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("max-steps must not be negative, got %d", cfg.MaxSteps)
	}
	return &cfg, nil
}
