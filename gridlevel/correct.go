package gridlevel

import (
	"fmt"
	"math"
	"strings"

	"github.com/mastercactapus/autolevel/coord"
)

// SetLastPoint sets the motion cursor: the end of the previously
// emitted motion. It must be called with the start of a toolpath
// before requesting corrected motion along it.
func (l *Leveler) SetLastPoint(p coord.Point) {
	l.last = l.toOutput(p)
	l.hasLast = true
}

// G1Corrected returns a single Z-corrected feed move to p: one
// subroutine call for capable dialects, or the inline interpolation
// expressions followed by a literal move for Custom. The cursor
// advances to p.
func (l *Leveler) G1Corrected(p coord.Point) string {
	q := l.toOutput(p)
	l.last = q
	l.hasLast = true

	if l.dialect.HasSubroutines() {
		return subst(l.syn.callSub2, l.g01SubNum, f5(q.X), f5(q.Y), "")
	}
	return l.interpolatePoint(q) +
		fmt.Sprintf("G01 Z[%s+#%d]\n", l.zwork, regInlineZ)
}

// AddChainPoint returns the corrected motion from the cursor to p for
// a continuous toolpath, subdividing the segment so no piece spans
// more than one probe-grid cell. The cursor advances to p.
func (l *Leveler) AddChainPoint(p coord.Point) string {
	q := l.toOutput(p)
	if !l.hasLast {
		// documented precondition; degrade to a single point
		l.last = q
	}

	var sb strings.Builder
	for _, s := range l.last.SplitXY(q, l.subdivisions(q)) {
		if l.dialect.HasSubroutines() {
			sb.WriteString(subst(l.syn.callSub2, l.g01SubNum, f5(s.X), f5(s.Y), ""))
		} else {
			sb.WriteString(l.interpolatePoint(s))
			sb.WriteString(fmt.Sprintf("X%s Y%s Z[#%d+#%d]\n", f5(s.X), f5(s.Y), regInlineZ, regWorkZ))
		}
	}

	l.last = q
	l.hasLast = true
	return sb.String()
}

// RapidTo returns a safe-height travel move to p's XY and resets the
// cursor there. Use it between toolpaths before corrected motion.
func (l *Leveler) RapidTo(p coord.Point) string {
	q := l.toOutput(p)
	l.last = q
	l.hasLast = true
	return fmt.Sprintf("G0 Z%s\nG0 X%s Y%s\n", l.zsafe, f5(q.X), f5(q.Y))
}

// subdivisions returns how many probe-grid cells the segment from the
// cursor to q crosses: axis-aligned segments divide by the crossing
// axis spacing, diagonal ones by the average spacing. Always at least
// one.
func (l *Leveler) subdivisions(q coord.Point) int {
	if !l.hasLast {
		return 1
	}

	dist := l.last.DistanceXY(q.X, q.Y)

	var spacing float64
	switch {
	case math.Abs(l.last.X-q.X) <= l.qerr: // X-aligned
		spacing = l.grid.distY
	case math.Abs(l.last.Y-q.Y) <= l.qerr: // Y-aligned
		spacing = l.grid.distX
	default:
		spacing = l.grid.avgDist
	}

	n := int(math.Ceil(dist / spacing))
	if n < 1 {
		return 1
	}
	return n
}

// interpolatePoint emits the bilinear interpolation of q's Z
// correction into the inline result register: two Y interpolations at
// the cell's X edges, then one X interpolation between them.
func (l *Leveler) interpolatePoint(q coord.Point) string {
	g := l.grid

	xmin := int(math.Floor((q.X - g.startX) / g.distX))
	ymin := int(math.Floor((q.Y - g.startY) / g.distY))
	fracX := (q.X - g.startX - float64(xmin)*g.distX) / g.distX
	fracY := (q.Y - g.startY - float64(ymin)*g.distY) / g.distY

	return fmt.Sprintf("#%d=[%s+[%s-%s]*%s]\n#%d=[%s+[%s-%s]*%s]\n#%d=[#%d+[#%d-#%d]*%s]\n",
		regInlineLow, g.varName(xmin, ymin), g.varName(xmin, ymin+1), g.varName(xmin, ymin), f5(fracY),
		regInlineHigh, g.varName(xmin+1, ymin), g.varName(xmin+1, ymin+1), g.varName(xmin+1, ymin), f5(fracY),
		regInlineZ, regInlineLow, regInlineHigh, regInlineLow, f5(fracX))
}
