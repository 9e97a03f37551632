package gcode

import (
	"fmt"
	"io"

	"github.com/mastercactapus/autolevel/coord"
)

// tracker follows machine position across blocks. It supports the
// envelope of typical toolpath files: G0/G1 motion, G90/G91 distance
// modes, and G20/G21 units.
type tracker struct {
	pos      coord.Point
	motion   float64
	relative bool
	inches   bool
}

func (t *tracker) run(b Block) (moved bool, err error) {
	for _, g := range b {
		switch {
		case g.W == 'G' && (g.Arg == 0 || g.Arg == 1):
			t.motion = g.Arg
		case g.W == 'G' && g.Arg == 90:
			t.relative = false
		case g.W == 'G' && g.Arg == 91:
			t.relative = true
		case g.W == 'G' && g.Arg == 20:
			t.inches = true
		case g.W == 'G' && g.Arg == 21:
			t.inches = false
		case g.IsAxis(), g.W == 'F', g.W == 'S':
			// handled below
		case g.W == 'M':
			// spindle/coolant/stop codes don't affect position
		default:
			return false, fmt.Errorf("unsupported code: %s", g.String())
		}
	}

	mul := 1.0
	if t.inches {
		mul = 25.4
	}

	set := func(cur *float64, v float64) {
		if t.relative {
			*cur += v
		} else {
			*cur = v
		}
	}

	old := t.pos
	for _, g := range b {
		switch g.W {
		case 'X':
			set(&t.pos.X, g.Arg*mul)
		case 'Y':
			set(&t.pos.Y, g.Arg*mul)
		case 'Z':
			set(&t.pos.Z, g.Arg*mul)
		}
	}

	return !old.Equal(t.pos), nil
}

// ExtractPaths reads a G-code program and collects the XY point
// sequences of its feed (G1) motion chains, in millimeters. A rapid
// (G0) motion ends the current chain.
func ExtractPaths(r io.Reader) ([]coord.Path, error) {
	p := NewParser(r)

	var t tracker
	var paths []coord.Path
	var cur coord.Path

	flush := func() {
		if len(cur) > 1 {
			paths = append(paths, cur)
		}
		cur = nil
	}

	for {
		b, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start := t.pos
		moved, err := t.run(b)
		if err != nil {
			return nil, err
		}
		if !moved {
			continue
		}

		if t.motion == 0 {
			flush()
			continue
		}

		if cur == nil {
			cur = coord.Path{start}
		}
		cur = append(cur, t.pos)
	}
	flush()

	return paths, nil
}
