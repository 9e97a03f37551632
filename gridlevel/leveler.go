// Package gridlevel generates automatic bed-leveling G-code for
// PCB-milling post-processing. It plans a Z-probing grid over the
// toolpath work area, emits the probing program for the target
// controller dialect, and corrects every toolpath motion by bilinear
// interpolation of the four nearest probed heights.
package gridlevel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mastercactapus/autolevel/coord"
)

// TileInfo describes multi-tile panelization of the board. When
// enabled, the probing area is extended to cover every tile and the
// correction subroutine compensates for the live work offset.
type TileInfo struct {
	Enabled bool

	// TileX/TileY are the tile counts per axis.
	TileX, TileY int
	// BoardWidth/BoardHeight are the physical tile dimensions, in
	// millimeters.
	BoardWidth, BoardHeight float64
}

// Config bundles everything a Leveler needs. Toolpath geometry is
// always in millimeters; configuration values are in millimeters when
// Metric is set, inches otherwise.
type Config struct {
	Dialect Dialect

	// Metric selects the units of the values in this Config;
	// MetricOutput selects the units of the emitted G-code.
	Metric       bool
	MetricOutput bool

	// ProbeDistX/ProbeDistY are the requested probe spacings. The
	// planner recomputes exact spacings so the grid spans the work
	// area precisely.
	ProbeDistX, ProbeDistY float64

	// ProbeFeed is the probing feed rate. Zero disables probing
	// entirely (the header emits no probe sequence).
	ProbeFeed float64
	// ProbeFeed2nd, when nonzero, adds a single-point re-probe
	// sequence after the grid for tool-change re-referencing.
	ProbeFeed2nd float64

	ZWork  float64 // working (milling) depth
	ZSafe  float64 // safe travel height
	ZProbe float64 // probing travel height

	// ProbeOn/ProbeOff are emitted verbatim around the probe
	// sequence; '@' characters become line breaks.
	ProbeOn, ProbeOff string

	// Custom-dialect command strings.
	ProbeCommand   string
	ProbeResultVar int
	SetZeroCommand string

	// XOffset/YOffset shift toolpath geometry into output
	// coordinates, in millimeters.
	XOffset, YOffset float64
	// QuantizationError is the floating-point slack for axis
	// alignment and work-area expansion, in millimeters.
	QuantizationError float64

	Tile TileInfo

	// OCodes supplies subroutine and loop numbers, GlobalVars
	// controller global-variable numbers. They default to sequences
	// starting at 100.
	OCodes, GlobalVars CodeSource
}

// Leveler generates the probing program and corrected motion for one
// output G-code program. It is single-threaded and not reusable
// across programs.
type Leveler struct {
	dialect Dialect
	syn     syntax

	unitconv float64 // config units -> output units
	cfactor  float64 // millimeters -> output units

	reqDistX, reqDistY float64 // requested probe spacing, output units

	zwork, zsafe, zprobe, zfail string
	probeFeed, probeFeed2nd     string
	probeOn, probeOff           string

	probeCustom string
	probeVar    string

	xOffset, yOffset float64
	qerr             float64 // output units

	tile TileInfo

	g01SubNum    int
	yProbeSubNum int
	xProbeSubNum int

	gv           [6]int
	initXOffVar  int
	initYOffVar  int
	ocodes       CodeSource
	secondOffset float64 // Z offset of the second-pass probe

	grid     grid
	prepared bool

	subsWritten bool

	last    coord.Point // output units
	hasLast bool
}

// New validates cfg and allocates the leveler's unique codes. Invalid
// configuration fails here rather than producing wrong G-code.
func New(cfg Config) (*Leveler, error) {
	if cfg.Dialect < LinuxCNC || cfg.Dialect > Custom {
		return nil, fmt.Errorf("unknown dialect: %d", cfg.Dialect)
	}
	if cfg.ProbeDistX <= 0 || cfg.ProbeDistY <= 0 {
		return nil, errors.New("probe distances must be positive")
	}
	if cfg.ProbeFeed < 0 || cfg.ProbeFeed2nd < 0 {
		return nil, errors.New("probe feed rates must not be negative")
	}
	if cfg.QuantizationError < 0 {
		return nil, errors.New("quantization error must not be negative")
	}
	if cfg.Dialect == Custom {
		if cfg.ProbeCommand == "" || cfg.SetZeroCommand == "" {
			return nil, errors.New("custom dialect requires probe and zero-set commands")
		}
		if cfg.ProbeResultVar <= 0 {
			return nil, errors.New("custom dialect requires a probe result variable")
		}
	}
	if cfg.Tile.Enabled && (cfg.Tile.TileX < 1 || cfg.Tile.TileY < 1) {
		return nil, errors.New("tile counts must be at least 1")
	}

	if cfg.OCodes == nil {
		cfg.OCodes = NewSequence(100)
	}
	if cfg.GlobalVars == nil {
		cfg.GlobalVars = NewSequence(100)
	}

	unitconv := 1.0
	if cfg.Metric && !cfg.MetricOutput {
		unitconv = 1 / 25.4
	} else if !cfg.Metric && cfg.MetricOutput {
		unitconv = 25.4
	}
	cfactor := 1 / 25.4
	zfail := -8.0
	secondOffset := 0.2
	if cfg.MetricOutput {
		cfactor = 1
		zfail = -200.0
		secondOffset = 5.08
	}

	l := &Leveler{
		dialect:  cfg.Dialect,
		unitconv: unitconv,
		cfactor:  cfactor,

		reqDistX: cfg.ProbeDistX * unitconv,
		reqDistY: cfg.ProbeDistY * unitconv,

		zwork:  f5(cfg.ZWork * unitconv),
		zsafe:  f3(cfg.ZSafe * unitconv),
		zprobe: f3(cfg.ZProbe * unitconv),
		zfail:  f3(zfail),

		probeOn:  expandBreaks(cfg.ProbeOn),
		probeOff: expandBreaks(cfg.ProbeOff),

		probeCustom: cfg.ProbeCommand,

		xOffset: cfg.XOffset,
		yOffset: cfg.YOffset,
		qerr:    cfg.QuantizationError * cfactor,

		tile:         cfg.Tile,
		ocodes:       cfg.OCodes,
		secondOffset: secondOffset,
	}
	if cfg.ProbeFeed > 0 {
		l.probeFeed = ffeed(cfg.ProbeFeed * unitconv)
	}
	if cfg.ProbeFeed2nd > 0 {
		l.probeFeed2nd = ffeed(cfg.ProbeFeed2nd * unitconv)
	}
	if cfg.ProbeResultVar > 0 {
		l.probeVar = fmt.Sprintf("#%d", cfg.ProbeResultVar)
	}

	l.g01SubNum = cfg.OCodes.Next()
	l.yProbeSubNum = cfg.OCodes.Next()
	l.xProbeSubNum = cfg.OCodes.Next()
	for i := range l.gv {
		l.gv[i] = cfg.GlobalVars.Next()
	}
	l.initXOffVar = cfg.GlobalVars.Next()
	l.initYOffVar = cfg.GlobalVars.Next()

	l.syn = dialectSyntax(cfg.Dialect, l.gv[0], l.gv[1])
	if cfg.Dialect == Custom {
		l.syn.probe = cfg.ProbeCommand
		l.syn.probeResult = l.probeVar
		l.syn.setZero = cfg.SetZeroCommand
	}

	return l, nil
}

// Grid returns the planned probe grid geometry. It is only valid
// after PrepareWorkarea succeeds.
func (l *Leveler) Grid() Grid {
	return Grid{
		StartX: l.grid.startX, StartY: l.grid.startY,
		DistX: l.grid.distX, DistY: l.grid.distY,
		NumX: l.grid.numX, NumY: l.grid.numY,
	}
}

// Grid is the planned probe-grid geometry, in output units.
type Grid struct {
	StartX, StartY float64
	DistX, DistY   float64
	NumX, NumY     int
}

func expandBreaks(s string) string {
	return strings.Replace(s, "@", "\n", -1)
}

// toOutput converts a toolpath point (millimeters) into output
// coordinates, applying the configured XY shift.
func (l *Leveler) toOutput(p coord.Point) coord.Point {
	return coord.Point{
		X: (p.X - l.xOffset) * l.cfactor,
		Y: (p.Y - l.yOffset) * l.cfactor,
	}
}
