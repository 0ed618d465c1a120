package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdrpinto/gridsearch/internal/app"
	"github.com/pdrpinto/gridsearch/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments on top of the environment
// defaults. It returns a populated app.Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer, defaults config.Config) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridsearch", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridsearch - step through A*, Dijkstra, DFS and BFS on a grid.

Usage:
  gridsearch [options] [SCENARIO_PATH]

Arguments:
  SCENARIO_PATH
    Path to a single .hcl scenario file or a directory of them. Without it a
    noise grid is generated from -width, -height, -seed and -threshold.

Options:
`)
		flagSet.PrintDefaults()
	}

	scenarioFlag := flagSet.String("scenario", "", "Path to the scenario file or directory.")
	nameFlag := flagSet.String("name", "", "Run only the scenario with this name.")
	algorithmFlag := flagSet.String("algorithm", "", "Override the algorithm: astar, dijkstra, dfs, bfs or all.")
	widthFlag := flagSet.Int("width", 24, "Generated grid width.")
	heightFlag := flagSet.Int("height", 12, "Generated grid height.")
	seedFlag := flagSet.Int64("seed", 1, "Noise seed for the generated grid.")
	thresholdFlag := flagSet.Float64("threshold", 0.35, "Noise level above which a generated cell is a wall (-1..1).")
	connectivityFlag := flagSet.Int("connectivity", 8, "Generated grid adjacency: 4 or 8.")
	metricFlag := flagSet.String("metric", "octile", "Generated grid metric: manhattan, euclidean, octile, chebyshev.")
	pacingFlag := flagSet.Duration("pacing", defaults.Search.Pacing, "Delay between steps.")
	workersFlag := flagSet.Int("workers", defaults.Search.Workers, "Worker goroutines pricing edges for astar and dijkstra.")
	maxStepsFlag := flagSet.Int("max-steps", defaults.Search.MaxSteps, "Abort a search after this many steps. 0 is unbounded.")
	renderFlag := flagSet.Bool("render", false, "Print an ASCII frame after every step.")
	logFormatFlag := flagSet.String("log-format", defaults.Logging.Format, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.Logging.Level, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *scenarioFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Scenario path determined.", "path", path)

	pacingSet := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "pacing" {
			pacingSet = true
		}
	})

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(app.Config{
		ScenarioPath: path,
		ScenarioName: *nameFlag,
		Algorithm:    strings.ToLower(*algorithmFlag),
		Width:        *widthFlag,
		Height:       *heightFlag,
		Seed:         *seedFlag,
		Threshold:    *thresholdFlag,
		Connectivity: *connectivityFlag,
		Metric:       *metricFlag,
		Pacing:       *pacingFlag,
		PacingSet:    pacingSet || defaults.Search.Pacing > 0,
		Workers:      *workersFlag,
		MaxSteps:     *maxStepsFlag,
		Render:       *renderFlag,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
