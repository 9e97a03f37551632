// Package config loads autolevel job files written in HCL and maps
// them onto a gridlevel configuration. Validation happens in
// gridlevel.New, not here.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/mastercactapus/autolevel/gridlevel"
)

// Job is the top-level structure of a job file.
type Job struct {
	Dialect      string `hcl:"dialect"`
	Metric       bool   `hcl:"metric,optional"`
	MetricOutput bool   `hcl:"metric_output,optional"`

	XOffset      float64 `hcl:"x_offset,optional"`
	YOffset      float64 `hcl:"y_offset,optional"`
	Quantization float64 `hcl:"quantization,optional"`

	Probe   ProbeBlock   `hcl:"probe,block"`
	Heights HeightsBlock `hcl:"heights,block"`
	Tile    *TileBlock   `hcl:"tile,block"`
}

type ProbeBlock struct {
	XDistance float64 `hcl:"x_distance"`
	YDistance float64 `hcl:"y_distance"`
	Feed      float64 `hcl:"feed"`
	// SecondFeed enables the post-grid tool-change re-probe.
	SecondFeed float64 `hcl:"second_feed,optional"`

	// On/Off commands bracket the probe sequence; '@' becomes a
	// line break.
	On  string `hcl:"on,optional"`
	Off string `hcl:"off,optional"`

	// Custom-dialect command strings.
	Command   string `hcl:"command,optional"`
	ResultVar int    `hcl:"result_var,optional"`
	SetZero   string `hcl:"set_zero,optional"`
}

type HeightsBlock struct {
	Work  float64 `hcl:"work"`
	Safe  float64 `hcl:"safe"`
	Probe float64 `hcl:"probe"`
}

type TileBlock struct {
	X      int     `hcl:"x"`
	Y      int     `hcl:"y"`
	Width  float64 `hcl:"width"`
	Height float64 `hcl:"height"`
}

// Load reads and decodes an HCL job file.
func Load(path string) (*Job, error) {
	var job Job
	err := hclsimple.DecodeFile(path, nil, &job)
	if err != nil {
		return nil, fmt.Errorf("decode job file %s: %w", path, err)
	}
	return &job, nil
}

// Decode parses job-file bytes; filename selects the HCL syntax and
// shows up in diagnostics.
func Decode(filename string, src []byte) (*Job, error) {
	var job Job
	err := hclsimple.Decode(filename, src, nil, &job)
	if err != nil {
		return nil, fmt.Errorf("decode job file %s: %w", filename, err)
	}
	return &job, nil
}

// Leveler converts the job into a gridlevel configuration.
func (j *Job) Leveler() (gridlevel.Config, error) {
	d, err := gridlevel.ParseDialect(j.Dialect)
	if err != nil {
		return gridlevel.Config{}, err
	}

	cfg := gridlevel.Config{
		Dialect:      d,
		Metric:       j.Metric,
		MetricOutput: j.MetricOutput,

		ProbeDistX:   j.Probe.XDistance,
		ProbeDistY:   j.Probe.YDistance,
		ProbeFeed:    j.Probe.Feed,
		ProbeFeed2nd: j.Probe.SecondFeed,

		ZWork:  j.Heights.Work,
		ZSafe:  j.Heights.Safe,
		ZProbe: j.Heights.Probe,

		ProbeOn:  j.Probe.On,
		ProbeOff: j.Probe.Off,

		ProbeCommand:   j.Probe.Command,
		ProbeResultVar: j.Probe.ResultVar,
		SetZeroCommand: j.Probe.SetZero,

		XOffset:           j.XOffset,
		YOffset:           j.YOffset,
		QuantizationError: j.Quantization,
	}
	if j.Tile != nil {
		cfg.Tile = gridlevel.TileInfo{
			Enabled:     true,
			TileX:       j.Tile.X,
			TileY:       j.Tile.Y,
			BoardWidth:  j.Tile.Width,
			BoardHeight: j.Tile.Height,
		}
	}

	return cfg, nil
}
