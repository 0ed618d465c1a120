package scenario

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a scenario file.
type fileRoot struct {
	Scenarios []*scenarioBlock `hcl:"scenario,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type scenarioBlock struct {
	Name      string         `hcl:"name,label"`
	Algorithm *string        `hcl:"algorithm,optional"`
	Pacing    *string        `hcl:"pacing,optional"`
	Start     hcl.Expression `hcl:"start,optional"`
	Goal      hcl.Expression `hcl:"goal,optional"`
	Grid      *gridBlock     `hcl:"grid,block"`
}

type gridBlock struct {
	Width        *int           `hcl:"width,optional"`
	Height       *int           `hcl:"height,optional"`
	Connectivity *int           `hcl:"connectivity,optional"`
	Metric       *string        `hcl:"metric,optional"`
	Layout       *string        `hcl:"layout,optional"`
	Walls        hcl.Expression `hcl:"walls,optional"`
	Noise        *noiseBlock    `hcl:"noise,block"`
}

type noiseBlock struct {
	Seed      int64    `hcl:"seed"`
	Threshold float64  `hcl:"threshold"`
	Scale     *float64 `hcl:"scale,optional"`
}
