package gridlevel

import (
	"errors"
	"fmt"
	"io"
)

// ew accumulates the first write error so emission code can stay
// linear.
type ew struct {
	w   io.Writer
	err error
}

func (e *ew) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *ew) print(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

// WriteHeader emits the probing preamble: safety moves, the reference
// probe that defines Z zero, the boustrophedon probing of the whole
// grid, the optional second-pass probe, and the closing sequence. For
// LinuxCNC the subroutine definitions are emitted first since they
// must precede use; for Mach3/Mach4 the caller appends
// WriteSubroutines after the program body instead.
func (l *Leveler) WriteHeader(w io.Writer) error {
	if !l.prepared {
		return errors.New("workarea not prepared")
	}

	e := &ew{w: w}

	if l.dialect == LinuxCNC {
		l.writeSubroutines(e)
	}

	if l.probeFeed != "" {
		l.writeProbing(e)
	}

	if l.probeFeed2nd != "" {
		l.writeSecondProbe(e)
	}

	e.print("\n")
	e.printf("G0 Z%s ( Move Z to safe height )\n", l.zsafe)
	if l.dialect.HasSubroutines() {
		e.printf("%s ( Close the probe log file )\n", l.syn.logClose)
	}
	e.print("( Probing has ended, each Z-coordinate will be corrected with a bilinear interpolation )\n")
	e.printf("%s\n", l.probeOff)
	if !l.dialect.HasSubroutines() {
		e.printf("\n#%d = %s\n", regWorkZ, l.zwork)
	}
	e.print("\n")

	return e.err
}

func (l *Leveler) writeProbing(e *ew) {
	g := l.grid

	if l.tile.Enabled {
		// save the pre-probe work offsets so tile offsets applied
		// later can be measured against them
		e.printf("#%d = #5211\n", l.initXOffVar)
		e.printf("#%d = #5212\n\n", l.initYOffVar)
	} else {
		e.printf("#%d = 0\n", l.initXOffVar)
		e.printf("#%d = 0\n\n", l.initYOffVar)
	}

	e.printf("%s\n", l.probeOn)
	e.printf("G0 Z%s ( Move Z to safe height )\n", l.zsafe)
	e.printf("G0 X%s Y%s ( Move XY to start point )\n", f5(g.startX), f5(g.startY))
	e.printf("G0 Z%s ( Move Z to probe height )\n", l.zprobe)
	if l.dialect.HasSubroutines() {
		e.printf("%s\n", l.syn.logOpen)
	}
	e.printf("%s Z%s F%s ( Z-probe )\n", l.syn.probe, l.zfail, l.probeFeed)
	e.printf("#%d = 0 ( Probe point [0, 0] is our reference )\n", gridVarBase)
	e.printf("%s ( Set the current Z as zero-value )\n", l.syn.setZero)
	e.print("\n")
	e.print("( We now start the real probing: move the Z axis to the probing height, move to )\n")
	e.printf("( the probing XY position, probe it and save the result, parameter %s, )\n", l.syn.probeResult)
	e.printf("( in a numbered parameter; we will make %d probes on the X-axis and )\n", g.numX)
	e.printf("( %d probes on the Y-axis, for a grand total of %d probes )\n", g.numY, g.numX*g.numY)
	e.print("\n")

	if l.dialect.HasSubroutines() {
		e.printf("#%d = 0 ( X iterator )\n", l.gv[0])
		e.printf("#%d = 1 ( Y iterator )\n", l.gv[1])
		e.printf("#%d = 1 ( UP or DOWN increment )\n", l.gv[2])
		e.printf("#%d = %d ( number of Y points; the 1st Y row can be done one time less )\n", l.gv[3], g.numY-1)
		e.print(subst(l.syn.repeat, l.xProbeSubNum, g.numX, l.ocodes.Next(), ""))
		return
	}

	// no loop support: unroll the boustrophedon scan. Point (0,0)
	// was already probed as the reference.
	j := 1
	incr := 1
	for i := 0; i < g.numX; i++ {
		for j >= 0 && j <= g.numY-1 {
			e.printf("G0 Z%s\n", l.zprobe)
			e.printf("X%s Y%s\n", f5(g.pointX(i)), f5(g.pointY(j)))
			e.printf("%s Z%s F%s\n", l.probeCustom, l.zfail, l.probeFeed)
			e.printf("%s=%s\n", g.varName(i, j), l.probeVar)
			j += incr
		}
		incr = -incr
		j += incr
	}
}

// writeSecondProbe emits a single-point probe/zero sequence at a
// slightly offset height, used to re-reference Z after a tool change.
func (l *Leveler) writeSecondProbe(e *ew) {
	g := l.grid

	e.print("\n")
	e.print("T2\n")
	e.print("(MSG, Insert the mill tool)\n")
	e.print("M0 (Temporary machine stop.)\n")
	e.printf("G0 Z[%s + %s] ( Move Z to safe height )\n", l.zsafe, f3(l.secondOffset))
	e.printf("G0 X%s Y%s ( Move XY to start point )\n", f5(g.startX), f5(g.startY))
	e.printf("G0 Z[%s + %s] ( Move Z to probe height )\n", l.zprobe, f3(l.secondOffset))
	e.printf("%s Z[%s - %s] F%s ( Probe )\n", l.syn.probe, l.zfail, f3(l.secondOffset), l.probeFeed2nd)
	e.printf("%s ( Set the current Z as zero-value )\n", l.syn.setZero)
}
