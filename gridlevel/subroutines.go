package gridlevel

import (
	"errors"
	"io"
	"strconv"
)

// Scratch registers used by the correction subroutine. The layout is
// a fixed contract with dialect-compatible callers; do not renumber.
const (
	regTileOffX    = 3 // x work offset delta (doubles as workZ for Custom)
	regTileOffY    = 4
	regCellX       = 5 // lower-left grid column of the cell
	regCellY       = 6
	regVarUpLeft   = 7 // parameter numbers of the cell corners
	regVarUpRight  = 8
	regVarLowLeft  = 9
	regVarLowRight = 10
	regFracY       = 11 // position inside the cell, normalized to 1
	regFracX       = 12
	regInterpMinX  = 13 // Y interpolation at the cell's two X edges
	regInterpMaxX  = 14
	regInterpZ     = 15 // final bilinear result
)

// Custom-dialect registers: the inline interpolation result and the
// working-depth register initialized by the header.
const (
	regInlineLow  = 1
	regInlineHigh = 2
	regInlineZ    = 3
	regWorkZ      = 4
)

// WriteSubroutines emits the correction and probing subroutine
// definitions. It is a no-op for the Custom dialect, which has no
// subroutine support. LinuxCNC requires the definitions before the
// program body (WriteHeader emits them); Mach3/Mach4 place them after
// it.
func (l *Leveler) WriteSubroutines(w io.Writer) error {
	if !l.dialect.HasSubroutines() {
		return nil
	}
	if !l.prepared {
		return errors.New("workarea not prepared")
	}

	e := &ew{w: w}
	l.writeSubroutines(e)
	return e.err
}

func (l *Leveler) writeSubroutines(e *ew) {
	if l.subsWritten {
		return
	}
	l.subsWritten = true

	g := l.grid
	syn := l.syn

	e.printf("%s ( G01 with Z-correction subroutine )\n", subst(syn.startSub, l.g01SubNum))
	if l.tile.Enabled {
		e.printf("    #%d = [ #5211 - #%d ] ( x-tile offset [minus the initial offset] )\n", regTileOffX, l.initXOffVar)
		e.printf("    #%d = [ #5212 - #%d ] ( y-tile offset [minus the initial offset] )\n", regTileOffY, l.initYOffVar)
	} else {
		e.printf("    #%d = 0 ( x-tile offset [minus the initial offset] )\n", regTileOffX)
		e.printf("    #%d = 0 ( y-tile offset [minus the initial offset] )\n", regTileOffY)
	}
	e.printf("    #%d = [ FIX[ [ %s - %s + #%d ] / %s ] ] ( Lower left point X index )\n",
		regCellX, syn.argX, f5(g.startX), regTileOffX, f5(g.distX))
	e.printf("    #%d = [ FIX[ [ %s - %s + #%d ] / %s ] ] ( Lower left point Y index )\n",
		regCellY, syn.argY, f5(g.startY), regTileOffY, f5(g.distY))
	e.printf("    #%d = [ #%d * %d + [ #%d + 1 ] + %d ] ( Upper left point parameter number )\n",
		regVarUpLeft, regCellX, g.numY, regCellY, gridVarBase)
	e.printf("    #%d = [ [ #%d + 1 ] * %d + [ #%d + 1 ] + %d ] ( Upper right point parameter number )\n",
		regVarUpRight, regCellX, g.numY, regCellY, gridVarBase)
	e.printf("    #%d = [ #%d * %d + #%d + %d ] ( Lower left point parameter number )\n",
		regVarLowLeft, regCellX, g.numY, regCellY, gridVarBase)
	e.printf("    #%d = [ [ #%d + 1 ] * %d + #%d + %d ] ( Lower right point parameter number )\n",
		regVarLowRight, regCellX, g.numY, regCellY, gridVarBase)
	e.printf("    #%d = [ [ %s + #%d - %s - #%d * %s ] / %s ] ( Y distance from the cell bottom, normalized to 1 )\n",
		regFracY, syn.argY, regTileOffY, f5(g.startY), regCellY, f5(g.distY), f5(g.distY))
	e.printf("    #%d = [ [ %s + #%d - %s - #%d * %s ] / %s ] ( X distance from the cell left edge, normalized to 1 )\n",
		regFracX, syn.argX, regTileOffX, f5(g.startX), regCellX, f5(g.distX), f5(g.distX))
	e.printf("    #%d = [ ##%d + [ ##%d - ##%d ] * #%d ] ( Linear interpolation of the x-min elements )\n",
		regInterpMinX, regVarLowLeft, regVarUpLeft, regVarLowLeft, regFracY)
	e.printf("    #%d = [ ##%d + [ ##%d - ##%d ] * #%d ] ( Linear interpolation of the x-max elements )\n",
		regInterpMaxX, regVarLowRight, regVarUpRight, regVarLowRight, regFracY)
	e.printf("    #%d = [ #%d + [ #%d - #%d ] * #%d ] ( Linear interpolation of previously interpolated points )\n",
		regInterpZ, regInterpMinX, regInterpMaxX, regInterpMinX, regFracX)
	e.printf("    G01 X%s Y%s Z[%s+#%d]\n", syn.argX, syn.argY, l.zwork, regInterpZ)
	e.printf("%s\n", subst(syn.endSub, l.g01SubNum))
	e.print("\n")

	e.printf("%s ( Y probe subroutine )\n", subst(syn.startSub, l.yProbeSubNum))
	e.printf("    G0 Z%s ( Move to probe height )\n", l.zprobe)
	e.printf("    X[#%d * %s + %s] Y[#%d * %s + %s] ( Move to the current probe point )\n",
		l.gv[0], f5(g.distX), f5(g.startX), l.gv[1], f5(g.distY), f5(g.startY))
	e.printf("    %s Z%s F%s ( Probe it )\n", syn.probe, l.zfail, l.probeFeed)
	e.printf("    #[#%d * %d + #%d + %d] = %s ( Save the probe in the correct parameter )\n",
		l.gv[0], g.numY, l.gv[1], gridVarBase, syn.probeResult)
	e.printf("    #%d = [#%d + #%d] ( Increment/decrement by 1 the Y counter )\n", l.gv[1], l.gv[1], l.gv[2])
	e.printf("%s\n", subst(syn.endSub, l.yProbeSubNum))
	e.print("\n")

	e.printf("%s ( X probe subroutine )\n", subst(syn.startSub, l.xProbeSubNum))
	e.print("    " + subst(syn.repeat, l.yProbeSubNum, "#"+strconv.Itoa(l.gv[3]), l.ocodes.Next(), "    "))
	e.printf("    #%d = %d\n", l.gv[3], g.numY)
	e.printf("    #%d = [0 - #%d]\n", l.gv[2], l.gv[2])
	e.printf("    #%d = [#%d + #%d]\n", l.gv[1], l.gv[1], l.gv[2])
	e.printf("    #%d = [#%d + 1] ( Increment by 1 the X counter )\n", l.gv[0], l.gv[0])
	e.printf("%s\n", subst(syn.endSub, l.xProbeSubNum))
	e.print("\n")
}
