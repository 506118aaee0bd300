// internal/cursor/driver.go
package cursor

import (
	"context"
	"errors"
	"time"
)

// TargetHandle is an opaque reference to a resolved on-page target. The
// concrete type belongs to the Driver implementation.
type TargetHandle any

// Driver is the narrow contract the cursor consumes from the browser
// automation layer. It exists so the orchestration logic stays agnostic of
// the underlying transport and can be mocked in tests.
type Driver interface {
	// ResolveTarget resolves a selector to a handle, optionally waiting up
	// to wait for it to appear. A zero wait means a single attempt.
	ResolveTarget(ctx context.Context, selector string, wait time.Duration) (TargetHandle, error)

	// BoundingRect returns the target's bounding box in viewport
	// coordinates, or nil when the target has no geometry.
	BoundingRect(ctx context.Context, h TargetHandle) (*Rect, error)

	// IntersectsViewport reports whether any part of the target is inside
	// the visible viewport.
	IntersectsViewport(ctx context.Context, h TargetHandle) (bool, error)

	// DispatchMouseMove sends a single pointer position. A zero Timestamp
	// means the transport stamps the event itself.
	DispatchMouseMove(ctx context.Context, p TimedPoint) error

	// DispatchMouseButton sends a press or release at the given position.
	DispatchMouseButton(ctx context.Context, p Point, press bool, button MouseButton, clickCount int) error

	// ScrollIntoView asks the page to bring the target into the viewport.
	ScrollIntoView(ctx context.Context, h TargetHandle) error

	// ScrollTo performs an instant native scroll to absolute document
	// coordinates. Implementations without native scrolling return
	// ErrUnsupported.
	ScrollTo(ctx context.Context, left, top float64) error

	// DispatchWheel sends a simulated wheel event with the given deltas.
	DispatchWheel(ctx context.Context, dx, dy float64) error

	// ScrollPosition returns the current scroll offsets.
	ScrollPosition(ctx context.Context) (Point, error)

	// DocumentSize returns the full document dimensions.
	DocumentSize(ctx context.Context) (width, height float64, err error)

	// ViewportSize returns the visible viewport dimensions.
	ViewportSize(ctx context.Context) (width, height float64, err error)

	// RandomViewportPoint picks a uniformly random point inside the
	// current viewport.
	RandomViewportPoint(ctx context.Context) (Point, error)

	// Connected reports whether the underlying transport is still alive.
	Connected() bool

	// Sleep pauses for d, respecting context cancellation.
	Sleep(ctx context.Context, d time.Duration) error
}

// ErrUnsupported marks a driver capability that is not available, letting
// callers fall through to the next strategy.
var ErrUnsupported = errors.New("cursor: operation unsupported by driver")
