// Filename: internal/cursor/scroll_test.go
package cursor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheelStepInterpolation(t *testing.T) {
	mock := newMockDriver()

	tests := []struct {
		name      string
		speed     int
		remaining float64
		want      float64
	}{
		{"max speed covers everything", 100, 1234, 1234},
		{"max speed negative", 100, -900, -900},
		{"half speed interpolates", 50, 200, 125}, // 50 + (200-50)*0.5
		{"half speed negative mirrors", 50, -200, -125},
		{"step never exceeds remaining", 50, 30, 30}, // 40 clamped to 30
		{"zero remaining", 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCursor(t, mock, Config{ScrollSpeed: tt.speed})
			assert.InDelta(t, tt.want, c.wheelStep(tt.remaining), 1e-9)
		})
	}
}

func TestScrollIntoViewNoOpWhenVisible(t *testing.T) {
	mock := newMockDriver()
	// Entirely inside the 1280x800 viewport even with the margin.
	mock.rect = &Rect{X: 200, Y: 200, Width: 60, Height: 30}
	c := newTestCursor(t, mock, Config{})

	require.NoError(t, c.ScrollIntoView(context.Background(), "#visible"))
	assert.Empty(t, mock.scrollToCalls)
	assert.Empty(t, mock.wheels)
	assert.Zero(t, mock.scrollIntoViews)
}

func TestScrollIntoViewUsesNativeScroll(t *testing.T) {
	mock := newMockDriver()
	mock.rect = &Rect{X: 100, Y: 1500, Width: 60, Height: 30}
	c := newTestCursor(t, mock, Config{})

	require.NoError(t, c.ScrollIntoView(context.Background(), "#below-fold"))

	require.Len(t, mock.scrollToCalls, 1)
	// bottom edge (1500+30) plus margin 30 must meet the 800px viewport:
	// scroll down by 1560-800 = 760.
	assert.InDelta(t, 760.0, mock.scrollToCalls[0].Y, 1e-9)
	assert.InDelta(t, 0.0, mock.scrollToCalls[0].X, 1e-9)
	assert.Empty(t, mock.wheels, "wheel fallback must not fire when native scrolling works")
}

func TestScrollIntoViewFallsBackToWheel(t *testing.T) {
	mock := newMockDriver()
	mock.rect = &Rect{X: 100, Y: 1500, Width: 60, Height: 30}
	mock.scrollToErr = ErrUnsupported
	c := newTestCursor(t, mock, Config{ScrollSpeed: 100})

	require.NoError(t, c.ScrollIntoView(context.Background(), "#below-fold"))

	// At full speed the wheel converges in a single dispatch.
	require.Len(t, mock.wheels, 1)
	assert.InDelta(t, 760.0, mock.wheels[0].dy, 1e-9)
}

func TestScrollIntoViewLastResortStrategy(t *testing.T) {
	mock := newMockDriver()
	mock.rect = &Rect{X: 100, Y: 1500, Width: 60, Height: 30}
	mock.scrollToErr = ErrUnsupported
	mock.wheelErr = errors.New("wheel dispatch rejected")
	c := newTestCursor(t, mock, Config{})

	require.NoError(t, c.ScrollIntoView(context.Background(), "#below-fold"))
	assert.Equal(t, 1, mock.scrollIntoViews,
		"page scroll-into-view is the final fallback")
}

func TestScrollIntoViewResolutionFailure(t *testing.T) {
	mock := newMockDriver()
	mock.resolveErr = errors.New("no node")
	c := newTestCursor(t, mock, Config{})

	err := c.ScrollIntoView(context.Background(), "#ghost")
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestScrollIntoViewDisconnectIsSilent(t *testing.T) {
	mock := newMockDriver()
	mock.resolveErr = errors.New("connection closed")
	mock.disconnected = true
	c := newTestCursor(t, mock, Config{})

	assert.NoError(t, c.ScrollIntoView(context.Background(), "#any"))
}

func TestScrollToAbsolutePosition(t *testing.T) {
	mock := newMockDriver()
	c := newTestCursor(t, mock, Config{})

	require.NoError(t, c.ScrollTo(context.Background(), Point{X: 400, Y: 200}))

	require.Len(t, mock.scrollToCalls, 1)
	assert.Equal(t, Point{X: 400, Y: 200}, mock.scrollToCalls[0])
	assert.Equal(t, Point{X: 400, Y: 200}, mock.scrollPos)
}

func TestScrollRelativeDelta(t *testing.T) {
	mock := newMockDriver()
	mock.scrollPos = Point{X: 0, Y: 250}
	c := newTestCursor(t, mock, Config{})

	require.NoError(t, c.Scroll(context.Background(), Point{X: 0, Y: -100}))

	require.Len(t, mock.scrollToCalls, 1)
	assert.InDelta(t, 150.0, mock.scrollToCalls[0].Y, 1e-9)
}

func TestWheelScrollConvergesAtLowSpeed(t *testing.T) {
	mock := newMockDriver()
	c := newTestCursor(t, mock, Config{ScrollSpeed: 50})

	ok := c.wheelScroll(context.Background(), 0, 300)
	require.True(t, ok)
	require.NotEmpty(t, mock.wheels)

	var total float64
	for _, w := range mock.wheels {
		total += w.dy
	}
	assert.Equal(t, 300.0, total, "wheel steps must sum to the requested distance exactly")
	assert.Greater(t, len(mock.wheels), 1, "low speed must take multiple steps")
}

func TestScrollToExactThroughWheelFallback(t *testing.T) {
	mock := newMockDriver()
	mock.scrollToErr = ErrUnsupported
	c := newTestCursor(t, mock, Config{ScrollSpeed: 50})

	require.NoError(t, c.ScrollTo(context.Background(), Point{X: 400, Y: 200}))

	var totalX, totalY float64
	for _, w := range mock.wheels {
		totalX += w.dx
		totalY += w.dy
	}
	assert.Equal(t, 400.0, totalX, "fallback must not stop short of the requested position")
	assert.Equal(t, 200.0, totalY)
}
