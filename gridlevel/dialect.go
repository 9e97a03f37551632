package gridlevel

import (
	"fmt"
	"strings"
)

// Dialect selects the controller syntax the generated program
// targets.
type Dialect int

const (
	LinuxCNC Dialect = iota
	Mach3
	Mach4
	// Custom targets controllers with no subroutine or loop support;
	// probing and correction are fully unrolled using user-supplied
	// probe and zero-set commands.
	Custom
)

func (d Dialect) String() string {
	switch d {
	case LinuxCNC:
		return "linuxcnc"
	case Mach3:
		return "mach3"
	case Mach4:
		return "mach4"
	case Custom:
		return "custom"
	}
	return "unknown"
}

func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "linuxcnc":
		return LinuxCNC, nil
	case "mach3":
		return Mach3, nil
	case "mach4":
		return Mach4, nil
	case "custom":
		return Custom, nil
	}
	return 0, fmt.Errorf("unknown dialect: %q", s)
}

// HasSubroutines reports whether the dialect can define and call
// subroutines. When false, probing and correction are emitted inline.
func (d Dialect) HasSubroutines() bool { return d != Custom }

// maxProbePoints is the controller's addressable-parameter ceiling
// for stored probe values.
func (d Dialect) maxProbePoints() int {
	if d == LinuxCNC {
		return 4501
	}
	return 500
}

// syntax carries the fixed command fragments and templates of one
// dialect. It is built once at construction; templates use {n}
// positional slots expanded by subst.
type syntax struct {
	probe       string // probe-trigger command
	probeResult string // register holding the probed Z
	setZero     string // set current Z as the zero value

	// callSub2 calls a two-argument subroutine:
	// {1} subroutine number, {2} X, {3} Y, {4} line indent.
	callSub2 string
	// startSub/endSub bracket a subroutine definition: {1} number.
	startSub string
	endSub   string
	// repeat calls a subroutine N times:
	// {1} subroutine number, {2} count, {3} loop code, {4} indent.
	repeat string

	logOpen  string
	logClose string

	// argX/argY name the registers holding the correction
	// subroutine's X and Y arguments.
	argX, argY string
}

// dialectSyntax builds the syntax for d. gv0 and gv1 are the global
// variable numbers Mach3 uses to pass subroutine arguments.
func dialectSyntax(d Dialect, gv0, gv1 int) syntax {
	switch d {
	case LinuxCNC:
		return syntax{
			probe:       "G38.2",
			probeResult: "#5063",
			setZero:     "G10 L20 P0 Z0",
			callSub2:    "o{1} call [{2}] [{3}]\n",
			startSub:    "o{1} sub",
			endSub:      "o{1} endsub",
			repeat:      "o{3} repeat [{2}]\n{4}    o{1} call\n{4}o{3} endrepeat\n",
			logOpen:     "(PROBEOPEN RawProbeLog.txt) ( Record all probes in RawProbeLog.txt )",
			logClose:    "(PROBECLOSE)",
			argX:        "#1",
			argY:        "#2",
		}
	case Mach4:
		return syntax{
			probe:       "G31",
			probeResult: "#5063",
			setZero:     "G92 Z0",
			callSub2:    "G65 P{1} A{2} B{3}\n",
			startSub:    "O{1}",
			endSub:      "M99",
			repeat:      "M98 P{1} L{2}\n",
			logOpen:     "M40 (Begins a probe log file, when the window appears, enter a name for the log file such as \"RawProbeLog.txt\")",
			logClose:    "M41",
			argX:        "#1",
			argY:        "#2",
		}
	case Mach3:
		return syntax{
			probe:       "G31",
			probeResult: "#2002",
			setZero:     "G92 Z0",
			callSub2:    fmt.Sprintf("#%d={2}\n{4}#%d={3}\n{4}M98 P{1}\n", gv0, gv1),
			startSub:    "O{1}",
			endSub:      "M99",
			repeat:      "M98 P{1} L{2}\n",
			logOpen:     "M40 (Begins a probe log file, when the window appears, enter a name for the log file such as \"RawProbeLog.txt\")",
			logClose:    "M41",
			argX:        fmt.Sprintf("#%d", gv0),
			argY:        fmt.Sprintf("#%d", gv1),
		}
	}
	// Custom has no fixed syntax beyond the user-supplied commands;
	// the zero value keeps emission inline-only.
	return syntax{}
}
