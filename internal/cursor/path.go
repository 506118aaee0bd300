// internal/cursor/path.go
package cursor

import (
	"math"
	"math/rand"
)

const (
	// defaultTargetWidth substitutes for a missing or zero target width in
	// the difficulty calculation.
	defaultTargetWidth = 100.0

	// arcLengthDiscount shaves 20% off the true path length so the model
	// yields slightly fewer points, matching fast human flicks.
	arcLengthDiscount = 0.8

	// fittsB is the slope of the Fitts's Law movement-time model
	// (MT = a + b*ID, with a = 0).
	fittsB = 2.0

	baseStepScale = 25.0
	stepMultiply  = 3.0
)

// PathOptions tunes a single trajectory synthesis. The zero value is valid:
// default reference width, randomized speed, spread derived from distance.
type PathOptions struct {
	// SpreadOverride fixes the anchor spread instead of deriving it from
	// the endpoint distance. Zero is a meaningful override (a nearly
	// straight line), hence the pointer.
	SpreadOverride *float64

	// MoveSpeed > 0 fixes the speed term; higher speed means fewer base
	// steps. When zero, speed is drawn fresh per call.
	MoveSpeed float64

	// TargetWidth is the effective width of the destination target. Zero
	// falls back to defaultTargetWidth.
	TargetWidth float64
}

// Path synthesizes a finite, fully materialized point sequence imitating a
// human pointer movement from start to dest. The first element equals start
// and the last equals dest exactly; every coordinate is clamped to
// non-negative screen space. Each call draws fresh randomness.
func Path(rng *rand.Rand, start, dest Point, opts PathOptions) []Point {
	width := opts.TargetWidth
	if width <= 0 {
		width = defaultTargetWidth
	}

	c := newCurve(rng, start, dest, opts.SpreadOverride)
	arcLength := c.Length() * arcLengthDiscount

	// Fitts's Law index of difficulty sized by path length and target width.
	id := math.Log2(arcLength/width + 1)
	movementTime := fittsB * id

	speedTerm := rng.Float64()
	if opts.MoveSpeed > 0 {
		speedTerm = baseStepScale / opts.MoveSpeed
	}
	baseSteps := speedTerm * baseStepScale

	steps := int(math.Ceil((math.Log2(movementTime+1) + baseSteps) * stepMultiply))

	points := c.Sample(steps)
	for i := range points {
		points[i] = clampNonNegative(points[i])
	}
	return points
}

// TimedPath is Path with per-point timestamps attached via the timing model.
// Timestamps are non-decreasing and the first stamp is the clock's current
// wall time.
func TimedPath(rng *rand.Rand, clock Clock, start, dest Point, opts PathOptions) []TimedPoint {
	if clock == nil {
		clock = systemClock{}
	}
	return attachTimestamps(rng, clock, Path(rng, start, dest, opts), opts.MoveSpeed)
}
