package gridlevel

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mastercactapus/autolevel/coord"
)

// ErrGridTooLarge is returned by PrepareWorkarea when the probe grid
// would exceed the dialect's addressable-parameter ceiling. There is
// no fallback grid; leveling must be abandoned for the job.
var ErrGridTooLarge = errors.New("probe grid exceeds the dialect point ceiling")

// gridVarBase is the first controller parameter number used for
// stored probe values.
const gridVarBase = 500

// grid is the planned probe grid, in output units. Immutable once
// computed.
type grid struct {
	startX, startY float64
	distX, distY   float64
	avgDist        float64
	numX, numY     int
}

// varNum maps a (column, row) grid index to its controller parameter
// number. The mapping is row-major by column and injective within one
// grid.
func (g grid) varNum(i, j int) int {
	return i*g.numY + j + gridVarBase
}

func (g grid) varName(i, j int) string {
	return "#" + strconv.Itoa(g.varNum(i, j))
}

// pointX/pointY give the output-unit location of a grid index.
func (g grid) pointX(i int) float64 { return g.startX + float64(i)*g.distX }
func (g grid) pointY(j int) float64 { return g.startY + float64(j)*g.distY }

// axisPoints derives the probe point count for one axis:
// round(length/required) intervals, at least 2 points, otherwise
// count+1 points so count intervals span the length.
func axisPoints(length, required float64) int {
	n := int(math.Round(length / required))
	if n <= 1 {
		return 2
	}
	return n + 1
}

// PrepareWorkarea computes the probe grid covering every point of
// every toolpath (millimeters), expanded by the quantization
// tolerance and extended for tiling. It must be called once before
// emitting anything.
func (l *Leveler) PrepareWorkarea(paths []coord.Path) error {
	b, ok := coord.PathBounds(paths)
	if !ok {
		return errors.New("no toolpath points")
	}

	minX := (b.MinX-l.xOffset)*l.cfactor - l.qerr
	minY := (b.MinY-l.yOffset)*l.cfactor - l.qerr
	maxX := (b.MaxX-l.xOffset)*l.cfactor + l.qerr
	maxY := (b.MaxY-l.yOffset)*l.cfactor + l.qerr

	lenX := maxX - minX
	lenY := maxY - minY
	if l.tile.Enabled {
		lenX += l.tile.BoardWidth * l.cfactor * float64(l.tile.TileX-1)
		lenY += l.tile.BoardHeight * l.cfactor * float64(l.tile.TileY-1)
	}

	g := grid{startX: minX, startY: minY}
	g.numX = axisPoints(lenX, l.reqDistX)
	g.numY = axisPoints(lenY, l.reqDistY)

	// recompute exact spacing so the grid spans the area precisely
	g.distX = lenX / float64(g.numX-1)
	g.distY = lenY / float64(g.numY-1)
	g.avgDist = (g.distX + g.distY) / 2

	if g.numX*g.numY > l.dialect.maxProbePoints() {
		return fmt.Errorf("%w: %d points", ErrGridTooLarge, g.numX*g.numY)
	}

	l.grid = g
	l.prepared = true
	return nil
}
