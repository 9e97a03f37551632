package coord

import (
	"math"
)

// Path is an ordered sequence of toolpath points.
type Path []Point

// Bounds is an axis-aligned XY bounding box.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// PathBounds returns the XY bounding box over every point of every
// path. The second return is false if there are no points at all.
func PathBounds(paths []Path) (Bounds, bool) {
	b := Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}

	var any bool
	for _, path := range paths {
		for _, p := range path {
			b.MinX = math.Min(b.MinX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MaxY = math.Max(b.MaxY, p.Y)
			any = true
		}
	}

	return b, any
}
