package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridgen"
	"github.com/pdrpinto/gridsearch/internal/config"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/pdrpinto/gridsearch/internal/logging"
	"github.com/pdrpinto/gridsearch/internal/render"
	"github.com/pdrpinto/gridsearch/scenario"
)

const generatedNoiseScale = 0.15

// App runs scenarios from the command line.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// Outcome is one algorithm's run on one scenario.
type Outcome struct {
	Scenario  string
	Algorithm gridsearch.Algorithm
	Steps     int
	Result    gridsearch.Result
}

// NewApp wires an App with its own logger writing to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := logging.New(config.LoggingConfig{Level: cfg.LogLevel, Format: cfg.LogFormat}, logW)
	return &App{outW: outW, logger: logger, config: cfg}
}

// Run loads or generates the scenarios and drives every requested search.
func (a *App) Run(ctx context.Context) ([]Outcome, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	scenarios, err := a.scenarios(ctx)
	if err != nil {
		return nil, err
	}

	var outcomes []Outcome
	for _, s := range scenarios {
		results, err := a.runScenario(ctx, s)
		outcomes = append(outcomes, results...)
		if err != nil {
			return outcomes, err
		}
	}
	if len(outcomes) > 1 {
		a.printSummary(outcomes)
	}
	return outcomes, nil
}

func (a *App) scenarios(ctx context.Context) ([]*scenario.Scenario, error) {
	if a.config.ScenarioPath == "" {
		s, err := a.generate()
		if err != nil {
			return nil, err
		}
		return []*scenario.Scenario{s}, nil
	}

	loaded, err := scenario.Load(ctx, a.config.ScenarioPath)
	if err != nil {
		return nil, err
	}
	if a.config.ScenarioName == "" {
		if len(loaded) == 0 {
			return nil, fmt.Errorf("no scenarios found in %s", a.config.ScenarioPath)
		}
		return loaded, nil
	}
	for _, s := range loaded {
		if s.Name == a.config.ScenarioName {
			return []*scenario.Scenario{s}, nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found in %s", a.config.ScenarioName, a.config.ScenarioPath)
}

// generate builds a noise grid with the endpoints in opposite corners.
func (a *App) generate() (*scenario.Scenario, error) {
	metric, err := gridgen.ParseMetric(a.config.Metric)
	if err != nil {
		return nil, err
	}
	grid, err := gridgen.New(a.config.Width, a.config.Height,
		gridgen.WithConnectivity(gridgen.Connectivity(a.config.Connectivity)),
		gridgen.WithMetric(metric),
	)
	if err != nil {
		return nil, err
	}
	start := gridsearch.Pos{X: 0, Y: 0}
	goal := gridsearch.Pos{X: a.config.Width - 1, Y: a.config.Height - 1}
	blocked := grid.Scatter(a.config.Seed, a.config.Threshold, generatedNoiseScale, start, goal)
	a.logger.Debug("Generated noise grid.", "width", a.config.Width, "height", a.config.Height, "seed", a.config.Seed, "blocked", blocked)

	return &scenario.Scenario{
		Name:      fmt.Sprintf("generated-%d", a.config.Seed),
		Algorithm: gridsearch.AStarSearch,
		Start:     start,
		Goal:      goal,
		Grid:      grid,
	}, nil
}

func (a *App) algorithms(s *scenario.Scenario) []gridsearch.Algorithm {
	switch a.config.Algorithm {
	case "":
		return []gridsearch.Algorithm{s.Algorithm}
	case AllAlgorithms:
		return gridsearch.Algorithms
	}
	algorithm, _ := gridsearch.ParseAlgorithm(a.config.Algorithm)
	return []gridsearch.Algorithm{algorithm}
}

func (a *App) runScenario(ctx context.Context, s *scenario.Scenario) ([]Outcome, error) {
	graph, err := s.Graph()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	pacing := s.Pacing
	if a.config.PacingSet {
		pacing = a.config.Pacing
	}

	var outcomes []Outcome
	for _, algorithm := range a.algorithms(s) {
		logger := a.logger.With("scenario", s.Name, "algorithm", algorithm.String())
		graph.Reset()

		stepper, err := gridsearch.NewStepper(ctx, algorithm, graph, s.Start, s.Goal,
			gridsearch.WithWorkers(a.config.Workers),
			gridsearch.WithLogger(logger),
		)
		if err != nil {
			return outcomes, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		driver := gridsearch.NewDriver(stepper, pacing, gridsearch.WithMaxSteps(a.config.MaxSteps))

		steps := 0
		result, err := driver.Run(ctx, func(snapshot gridsearch.StepSnapshot) {
			steps = snapshot.StepIndex
			if a.config.Render {
				fmt.Fprintf(a.outW, "%s step %d expanded %d frontier %d\n", algorithm, snapshot.StepIndex, snapshot.Expanded, snapshot.Frontier)
				fmt.Fprint(a.outW, render.Frame(graph, s.Grid.Width(), s.Grid.Height(), s.Start, s.Goal))
			}
		})
		outcomes = append(outcomes, Outcome{Scenario: s.Name, Algorithm: algorithm, Steps: steps, Result: result})
		if err != nil {
			logger.Warn("Search aborted.", "error", err, "nodes_expanded", result.NodesExpanded, "steps", steps)
			return outcomes, err
		}

		if result.Found {
			logger.Info("Path found.", "nodes_expanded", result.NodesExpanded, "path_length", result.PathLength, "cost", result.Cost, "steps", steps)
		} else {
			logger.Info("Path not found.", "nodes_expanded", result.NodesExpanded, "steps", steps)
		}
	}
	return outcomes, nil
}

func (a *App) printSummary(outcomes []Outcome) {
	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tALGORITHM\tFOUND\tEXPANDED\tLENGTH\tCOST\tSTEPS")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%s\t%t\t%d\t%d\t%.3f\t%d\n",
			o.Scenario, o.Algorithm, o.Result.Found, o.Result.NodesExpanded, o.Result.PathLength, o.Result.Cost, o.Steps)
	}
	w.Flush()
}
