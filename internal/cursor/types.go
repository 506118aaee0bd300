// internal/cursor/types.go
package cursor

import "time"

// TimedPoint is a Point with an integer millisecond wall-clock timestamp.
type TimedPoint struct {
	Point
	Timestamp int64 `json:"timestamp"`
}

// Rect is a target's bounding box in viewport coordinates. A zero width or
// height is treated as missing and substituted with a default reference width
// for difficulty calculations.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TopLeft returns the rectangle's origin corner.
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// containsHalfOpen tests whether p lies within r using a half-open interval:
// left/top edges excluded, right/bottom included. The asymmetry is a
// tie-break against boundary rounding.
func (r Rect) containsHalfOpen(p Point) bool {
	return p.X > r.X && p.X <= r.X+r.Width &&
		p.Y > r.Y && p.Y <= r.Y+r.Height
}

// MouseButton identifies a pointer button, mirroring the CDP protocol strings.
type MouseButton string

const (
	ButtonNone   MouseButton = "none"
	ButtonLeft   MouseButton = "left"
	ButtonRight  MouseButton = "right"
	ButtonMiddle MouseButton = "middle"
)

// Clock abstracts wall-clock time so the timing model can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
