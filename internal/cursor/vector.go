// internal/cursor/vector.go
package cursor

import (
	"math"
	"math/rand"
)

// Point is a screen-space coordinate. It doubles as a 2D vector for the
// trajectory math.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the vector sum of p and other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the vector difference of p and other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul returns p scaled by the scalar factor.
func (p Point) Mul(scalar float64) Point {
	return Point{X: p.X * scalar, Y: p.Y * scalar}
}

// Mag calculates the magnitude (length) of the vector.
func (p Point) Mag() float64 {
	// Use math.Hypot for numerical stability.
	return math.Hypot(p.X, p.Y)
}

// Dist calculates the Euclidean distance between p and other.
func (p Point) Dist(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Unit returns a vector of magnitude 1 in the same direction as p.
// The zero vector maps to itself.
func (p Point) Unit() Point {
	mag := p.Mag()
	if mag < 1e-9 {
		return Point{}
	}
	return p.Mul(1.0 / mag)
}

// Perp returns the unit vector perpendicular to p.
func (p Point) Perp() Point {
	return Point{X: p.Y, Y: -p.X}.Unit()
}

// clampNonNegative pins a coordinate into valid screen space.
func clampNonNegative(p Point) Point {
	return Point{X: math.Max(0, p.X), Y: math.Max(0, p.Y)}
}

// randPointOnSegment picks a uniformly random point on the segment a->b.
func randPointOnSegment(rng *rand.Rand, a, b Point) Point {
	return a.Add(b.Sub(a).Mul(rng.Float64()))
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
