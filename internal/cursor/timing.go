// internal/cursor/timing.go
package cursor

import (
	"math"
	"math/rand"
)

// attachTimestamps assigns each sampled point a cumulative millisecond
// timestamp. The delta for point i is obtained by treating the local window
// (P[i-1], P[i], P[i+1], P[i+2]) as cubic control points and numerically
// integrating the micro-curve's speed, divided by the speed factor. Window
// indices past either end of the sequence are clamped, which degenerates the
// boundary cubics toward repeated endpoints and keeps the stamps continuous.
func attachTimestamps(rng *rand.Rand, clock Clock, points []Point, moveSpeed float64) []TimedPoint {
	if len(points) == 0 {
		return nil
	}

	speed := moveSpeed
	if speed <= 0 {
		speed = 0.5 + rng.Float64()*0.5
	}

	timed := make([]TimedPoint, len(points))
	ts := clock.Now().UnixMilli()
	timed[0] = TimedPoint{Point: points[0], Timestamp: ts}

	for i := 1; i < len(points); i++ {
		c := localCubic(points, i)
		delta := int64(math.Round(c.speedIntegral(len(points)) / speed))
		if delta < 0 {
			delta = 0
		}
		ts += delta
		timed[i] = TimedPoint{Point: points[i], Timestamp: ts}
	}
	return timed
}

// localCubic builds the micro-segment cubic ending at points[i].
func localCubic(points []Point, i int) curve {
	at := func(j int) Point {
		if j < 0 {
			j = 0
		}
		if j > len(points)-1 {
			j = len(points) - 1
		}
		return points[j]
	}
	return curve{p0: at(i - 1), p1: at(i), p2: at(i + 1), p3: at(i + 2)}
}
