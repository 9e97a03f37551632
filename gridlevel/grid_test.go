package gridlevel

import (
	"testing"

	"github.com/mastercactapus/autolevel/coord"
	"github.com/stretchr/testify/assert"
)

func testConfig(d Dialect) Config {
	cfg := Config{
		Dialect:      d,
		Metric:       true,
		MetricOutput: true,
		ProbeDistX:   10,
		ProbeDistY:   10,
		ProbeFeed:    100,
		ZWork:        -0.05,
		ZSafe:        5,
		ZProbe:       1,
		ProbeOn:      "M64 P0",
		ProbeOff:     "M65 P0",
	}
	if d == Custom {
		cfg.ProbeCommand = "G38.2"
		cfg.SetZeroCommand = "G92 Z0"
		cfg.ProbeResultVar = 5063
	}
	return cfg
}

func rectPaths(w, h float64) []coord.Path {
	return []coord.Path{
		{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0}},
	}
}

func TestPrepareWorkarea(t *testing.T) {
	l, err := New(testConfig(LinuxCNC))
	assert.NoError(t, err)

	err = l.PrepareWorkarea(rectPaths(100, 80))
	assert.NoError(t, err)

	g := l.Grid()
	assert.Equal(t, 11, g.NumX)
	assert.Equal(t, 9, g.NumY)
	assert.InDelta(t, 10, g.DistX, 1e-9)
	assert.InDelta(t, 10, g.DistY, 1e-9)
	assert.InDelta(t, 0, g.StartX, 1e-9)
	assert.InDelta(t, 0, g.StartY, 1e-9)

	// spacing * (points-1) spans the work area exactly
	assert.InDelta(t, 100, g.DistX*float64(g.NumX-1), 1e-9)
	assert.InDelta(t, 80, g.DistY*float64(g.NumY-1), 1e-9)
}

func TestPrepareWorkarea_MinPoints(t *testing.T) {
	l, err := New(testConfig(LinuxCNC))
	assert.NoError(t, err)

	// a tiny work area still gets 2 points per axis
	err = l.PrepareWorkarea(rectPaths(3, 3))
	assert.NoError(t, err)

	g := l.Grid()
	assert.Equal(t, 2, g.NumX)
	assert.Equal(t, 2, g.NumY)
	assert.InDelta(t, 3, g.DistX, 1e-9)
}

func TestPrepareWorkarea_TooLarge(t *testing.T) {
	// 100*50 = 5000 points exceeds every dialect ceiling
	l, err := New(testConfig(Mach3))
	assert.NoError(t, err)
	err = l.PrepareWorkarea(rectPaths(990, 490))
	assert.ErrorIs(t, err, ErrGridTooLarge)

	l, err = New(testConfig(LinuxCNC))
	assert.NoError(t, err)
	err = l.PrepareWorkarea(rectPaths(990, 490))
	assert.ErrorIs(t, err, ErrGridTooLarge)

	// but 45*45 = 2025 is fine on LinuxCNC and too much for Mach3
	l, err = New(testConfig(LinuxCNC))
	assert.NoError(t, err)
	assert.NoError(t, l.PrepareWorkarea(rectPaths(440, 440)))

	l, err = New(testConfig(Mach3))
	assert.NoError(t, err)
	assert.ErrorIs(t, l.PrepareWorkarea(rectPaths(440, 440)), ErrGridTooLarge)
}

func TestPrepareWorkarea_NoPoints(t *testing.T) {
	l, err := New(testConfig(LinuxCNC))
	assert.NoError(t, err)
	assert.Error(t, l.PrepareWorkarea(nil))
}

func TestPrepareWorkarea_Tiling(t *testing.T) {
	cfg := testConfig(LinuxCNC)
	cfg.Tile = TileInfo{Enabled: true, TileX: 2, TileY: 1, BoardWidth: 100, BoardHeight: 80}
	l, err := New(cfg)
	assert.NoError(t, err)

	err = l.PrepareWorkarea(rectPaths(50, 50))
	assert.NoError(t, err)

	// X extends by (tileX-1)*boardWidth
	g := l.Grid()
	assert.Equal(t, 16, g.NumX)
	assert.InDelta(t, 150, g.DistX*float64(g.NumX-1), 1e-9)
	assert.Equal(t, 6, g.NumY)
}

func TestGrid_VarName(t *testing.T) {
	g := grid{numX: 11, numY: 10}
	assert.Equal(t, "#608", g.varName(10, 8))
	assert.Equal(t, "#500", g.varName(0, 0))

	// injective over one grid
	g = grid{numX: 3, numY: 4}
	seen := map[int]bool{}
	for i := 0; i < g.numX; i++ {
		for j := 0; j < g.numY; j++ {
			n := g.varNum(i, j)
			assert.False(t, seen[n], "duplicate var %d", n)
			seen[n] = true
		}
	}
}

func TestAxisPoints(t *testing.T) {
	assert.Equal(t, 11, axisPoints(100, 10))
	assert.Equal(t, 2, axisPoints(5, 10))
	assert.Equal(t, 2, axisPoints(14, 10))
	assert.Equal(t, 3, axisPoints(16, 10))
}

func TestNew_Validation(t *testing.T) {
	cfg := testConfig(LinuxCNC)
	cfg.ProbeDistX = 0
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = testConfig(LinuxCNC)
	cfg.ProbeFeed = -1
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = testConfig(Custom)
	cfg.SetZeroCommand = ""
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = testConfig(LinuxCNC)
	cfg.Dialect = Dialect(42)
	_, err = New(cfg)
	assert.Error(t, err)
}
