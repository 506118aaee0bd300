// internal/cursor/bezier.go
package cursor

import (
	"math/rand"
)

const (
	// Anchor spread bounds when no override is supplied.
	minSpread = 2.0
	maxSpread = 200.0

	// Segment count for the arc-length lookup table.
	arcSamples = 100
)

// curve is a cubic Bezier: two endpoints and two randomized interior anchors.
// Curves are ephemeral, built fresh for every synthesized trajectory.
type curve struct {
	p0, p1, p2, p3 Point
}

// generateAnchors produces the two interior control points for a curve from a
// to b. Each anchor is doubly randomized: a random midpoint on a->b, a
// perpendicular excursion scaled by spread, then another random interpolation
// along that excursion. Anchors sitting exactly on the perpendicular line
// look mechanical.
//
// The result is sorted by ascending X so the cubic cannot fold back on
// itself when a.X > b.X.
func generateAnchors(rng *rand.Rand, a, b Point, spread float64) [2]Point {
	side := 1.0
	if rng.Float64() < 0.5 {
		side = -1.0
	}

	anchor := func() Point {
		m := randPointOnSegment(rng, a, b)
		n := m.Add(m.Sub(a).Perp().Mul(spread * side))
		return randPointOnSegment(rng, m, n)
	}

	anchors := [2]Point{anchor(), anchor()}
	if anchors[0].X > anchors[1].X {
		anchors[0], anchors[1] = anchors[1], anchors[0]
	}
	return anchors
}

// newCurve builds a cubic between start and end. The anchor spread defaults
// to the clamped endpoint distance unless an override is supplied.
func newCurve(rng *rand.Rand, start, end Point, spreadOverride *float64) curve {
	spread := clampFloat(start.Dist(end), minSpread, maxSpread)
	if spreadOverride != nil {
		spread = *spreadOverride
	}

	anchors := generateAnchors(rng, start, end, spread)
	return curve{p0: start, p1: anchors[0], p2: anchors[1], p3: end}
}

// At evaluates the curve at parameter t in [0,1].
func (c curve) At(t float64) Point {
	omt := 1.0 - t
	omt2 := omt * omt
	t2 := t * t
	return c.p0.Mul(omt2 * omt).
		Add(c.p1.Mul(3 * omt2 * t)).
		Add(c.p2.Mul(3 * omt * t2)).
		Add(c.p3.Mul(t2 * t))
}

// Derivative evaluates the curve's first derivative at parameter t.
func (c curve) Derivative(t float64) Point {
	omt := 1.0 - t
	return c.p1.Sub(c.p0).Mul(3 * omt * omt).
		Add(c.p2.Sub(c.p1).Mul(6 * omt * t)).
		Add(c.p3.Sub(c.p2).Mul(3 * t * t))
}

// Length approximates arc length by chord summation over the lookup table.
func (c curve) Length() float64 {
	var length float64
	prev := c.p0
	for i := 1; i <= arcSamples; i++ {
		next := c.At(float64(i) / arcSamples)
		length += prev.Dist(next)
		prev = next
	}
	return length
}

// Sample evaluates the curve at steps uniformly-spaced parameter values.
// The first and last samples are the exact endpoints, not approximations.
func (c curve) Sample(steps int) []Point {
	if steps < 2 {
		steps = 2
	}
	points := make([]Point, steps)
	points[0] = c.p0
	for i := 1; i < steps-1; i++ {
		points[i] = c.At(float64(i) / float64(steps-1))
	}
	points[steps-1] = c.p3
	return points
}

// speedIntegral numerically integrates the magnitude of the curve's
// derivative over [0,1] using the trapezoidal rule with the given number of
// samples.
func (c curve) speedIntegral(samples int) float64 {
	if samples < 2 {
		samples = 2
	}
	h := 1.0 / float64(samples)
	sum := 0.0
	prev := c.Derivative(0).Mag()
	for i := 1; i <= samples; i++ {
		next := c.Derivative(float64(i) * h).Mag()
		sum += (prev + next) / 2 * h
		prev = next
	}
	return sum
}
