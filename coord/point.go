package coord

import (
	"math"
)

type Point struct{ X, Y, Z float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

// EqualXY reports whether p and b are at the same XY location
// within tol on both axes.
func (p Point) EqualXY(b Point, tol float64) bool {
	return math.Abs(p.X-b.X) <= tol && math.Abs(p.Y-b.Y) <= tol
}

func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}

func (p Point) Div(val float64) Point {
	p.X /= val
	p.Y /= val
	p.Z /= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Sqrt(math.Pow(x-p.X, 2) + math.Pow(y-p.Y, 2))
}

// SplitXY will return n evenly spaced points along the XY segment
// from p to the target. The first point is one step past p and the
// last is the target itself.
func (p Point) SplitXY(target Point, n int) []Point {
	dx := (target.X - p.X) / float64(n)
	dy := (target.Y - p.Y) / float64(n)

	res := make([]Point, n)
	for i := range res {
		res[i].X = p.X + dx*float64(i+1)
		res[i].Y = p.Y + dy*float64(i+1)
	}

	return res
}
