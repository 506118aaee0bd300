// Filename: internal/cursor/bezier_test.go
package cursor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAnchorsSortedByX(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		a := Point{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
		b := Point{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
		anchors := generateAnchors(rng, a, b, 50)
		assert.LessOrEqual(t, anchors[0].X, anchors[1].X)
	}
}

func TestCurveEvaluatesEndpointsExactly(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := Point{X: 10, Y: 20}
	end := Point{X: 400, Y: 300}
	c := newCurve(rng, start, end, nil)

	assert.Equal(t, start, c.At(0))
	assert.InDelta(t, end.X, c.At(1).X, 1e-9)
	assert.InDelta(t, end.Y, c.At(1).Y, 1e-9)
}

func TestSampleExactEndpointsAndMinimumCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := Point{X: 0, Y: 0}
	end := Point{X: 100, Y: 100}
	c := newCurve(rng, start, end, nil)

	points := c.Sample(50)
	require.Len(t, points, 50)
	assert.Equal(t, start, points[0])
	assert.Equal(t, end, points[49])

	// Degenerate step counts still produce both endpoints.
	short := c.Sample(0)
	require.Len(t, short, 2)
	assert.Equal(t, start, short[0])
	assert.Equal(t, end, short[1])
}

func TestLengthOfDegenerateStraightCurve(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	start := Point{X: 0, Y: 0}
	end := Point{X: 300, Y: 400}

	// Zero spread collapses the anchors onto the chord, so the curve is the
	// straight segment and its length is the endpoint distance.
	zero := 0.0
	c := newCurve(rng, start, end, &zero)
	assert.InDelta(t, 500.0, c.Length(), 1e-6)
}

func TestSpeedIntegralPositiveForNonDegenerateCurve(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := newCurve(rng, Point{}, Point{X: 250, Y: 100}, nil)
	assert.Greater(t, c.speedIntegral(60), 0.0)
}
