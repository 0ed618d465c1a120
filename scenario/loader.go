// Package scenario loads search scenarios (grid, endpoints, algorithm and
// pacing) from HCL files.
package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridgen"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
)

const defaultNoiseScale = 0.15

// Scenario is a fully built search setup.
type Scenario struct {
	Name      string
	Source    string
	Algorithm gridsearch.Algorithm
	Pacing    time.Duration
	Start     gridsearch.Pos
	Goal      gridsearch.Pos
	Grid      *gridgen.Grid
}

// Graph builds a fresh search graph over the scenario's grid.
func (s *Scenario) Graph() (*gridsearch.Graph, error) {
	return s.Grid.Graph()
}

// Load parses every .hcl file found under paths, which may be files or
// directories, and builds the scenarios they declare. Scenario names must
// be unique across all files.
func Load(ctx context.Context, paths ...string) ([]*Scenario, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered scenario files.", "count", len(files))

	parser := hclparse.NewParser()
	var scenarios []*Scenario
	seen := make(map[string]string)
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse scenario file %s: %w", file, diags)
		}
		loaded, err := decodeFile(ctx, file, hclFile)
		if err != nil {
			return nil, err
		}
		for _, s := range loaded {
			if previous, dup := seen[s.Name]; dup {
				return nil, fmt.Errorf("scenario %q declared in both %s and %s", s.Name, previous, file)
			}
			seen[s.Name] = file
		}
		scenarios = append(scenarios, loaded...)
	}

	logger.Debug("Scenario loading complete.", "scenarios", len(scenarios))
	return scenarios, nil
}

// Parse decodes scenarios from in-memory HCL source.
func Parse(ctx context.Context, filename string, src []byte) ([]*Scenario, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", filename, diags)
	}
	return decodeFile(ctx, filename, hclFile)
}

func decodeFile(ctx context.Context, filename string, file *hcl.File) ([]*Scenario, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario file %s: %w", filename, diags)
	}

	out := make([]*Scenario, 0, len(root.Scenarios))
	for _, block := range root.Scenarios {
		s, err := translateScenario(ctx, block)
		if err != nil {
			return nil, fmt.Errorf("scenario %q in %s: %w", block.Name, filename, err)
		}
		s.Source = filename
		out = append(out, s)
	}
	return out, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
