// internal/cursor/scroll.go
package cursor

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// maxScrollSpeed is the speed setting at which a wheel scroll covers the
// whole remaining distance in a single dispatched step.
const maxScrollSpeed = 100

// ScrollIntoView resolves a selector and converges the viewport onto it.
// Resolution failure surfaces as ErrTargetNotFound; the scrolling itself
// degrades through its strategy chain and never errors.
func (c *Cursor) ScrollIntoView(ctx context.Context, selector string) error {
	h, err := c.driver.ResolveTarget(ctx, selector, c.cfg.SelectorWait)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !c.driver.Connected() {
			c.logger.Debug("scroll aborted: driver disconnected")
			return nil
		}
		return fmt.Errorf("%w: %q: %w", ErrTargetNotFound, selector, err)
	}
	c.ensureVisible(ctx, h)
	return nil
}

// ScrollTo scrolls the viewport to an absolute document position.
func (c *Cursor) ScrollTo(ctx context.Context, pos Point) error {
	current, err := c.driver.ScrollPosition(ctx)
	if err != nil {
		c.logger.Debug("scroll: position unavailable", zap.Error(err))
		return nil
	}
	c.scrollDelta(ctx, pos.X-current.X, pos.Y-current.Y)
	return nil
}

// Scroll scrolls the viewport by a relative delta.
func (c *Cursor) Scroll(ctx context.Context, delta Point) error {
	c.scrollDelta(ctx, delta.X, delta.Y)
	return nil
}

// ensureVisible computes the minimal scroll needed to bring the target's
// rectangle (plus margin) into the visible viewport and performs it. If the
// rectangle is already contained this is a no-op. The scroll degrades
// through native scrolling, stepwise wheel simulation and finally the
// page-level scroll-into-view behavior, giving up quietly after that.
func (c *Cursor) ensureVisible(ctx context.Context, h TargetHandle) {
	box, err := c.driver.BoundingRect(ctx, h)
	if err != nil || box == nil {
		c.fallbackScrollIntoView(ctx, h)
		return
	}

	scroll, err := c.driver.ScrollPosition(ctx)
	if err != nil {
		c.fallbackScrollIntoView(ctx, h)
		return
	}
	vw, vh, err := c.driver.ViewportSize(ctx)
	if err != nil {
		c.fallbackScrollIntoView(ctx, h)
		return
	}
	docW, docH, err := c.driver.DocumentSize(ctx)
	if err != nil {
		docW, docH = math.Inf(1), math.Inf(1)
	}

	// Margin-expanded rectangle in absolute document coordinates, clamped
	// to the document bounds.
	m := c.cfg.ScrollMargin
	left := clampFloat(box.X-m+scroll.X, 0, docW)
	top := clampFloat(box.Y-m+scroll.Y, 0, docH)
	right := clampFloat(box.X+box.Width+m+scroll.X, 0, docW)
	bottom := clampFloat(box.Y+box.Height+m+scroll.Y, 0, docH)

	var dx, dy float64
	switch {
	case left < scroll.X:
		dx = left - scroll.X
	case right > scroll.X+vw:
		dx = right - (scroll.X + vw)
	}
	switch {
	case top < scroll.Y:
		dy = top - scroll.Y
	case bottom > scroll.Y+vh:
		dy = bottom - (scroll.Y + vh)
	}

	if dx == 0 && dy == 0 {
		return
	}
	if !c.scrollDelta(ctx, dx, dy) {
		c.fallbackScrollIntoView(ctx, h)
	}
}

// scrollDelta performs a relative scroll, preferring an instant native
// scroll and falling back to stepwise wheel simulation. It reports whether
// any strategy succeeded.
func (c *Cursor) scrollDelta(ctx context.Context, dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return true
	}

	if current, err := c.driver.ScrollPosition(ctx); err == nil {
		nerr := c.driver.ScrollTo(ctx, current.X+dx, current.Y+dy)
		if nerr == nil {
			return true
		}
		c.logger.Debug("scroll: native scroll unavailable", zap.Error(nerr))
	}

	return c.wheelScroll(ctx, dx, dy)
}

// wheelScroll walks the remaining distance with simulated wheel events. The
// per-step magnitude equals the configured speed at low settings and scales
// toward covering the whole remaining distance in one step as the speed
// approaches its maximum. Once the remainder drops to the speed setting the
// step consumes it exactly, so the loop terminates with a zero residual and
// the dispatched deltas sum to the requested distance.
func (c *Cursor) wheelScroll(ctx context.Context, dx, dy float64) bool {
	remX, remY := dx, dy
	for remX != 0 || remY != 0 {
		if ctx.Err() != nil {
			return false
		}
		stepX := c.wheelStep(remX)
		stepY := c.wheelStep(remY)
		if err := c.driver.DispatchWheel(ctx, stepX, stepY); err != nil {
			c.logger.Debug("scroll: wheel dispatch failed", zap.Error(err))
			return false
		}
		remX -= stepX
		remY -= stepY
		if err := c.sleep(ctx, time.Duration(20+c.rng.Intn(40))*time.Millisecond); err != nil {
			return false
		}
	}
	return true
}

// wheelStep sizes one wheel increment toward consuming remaining. With
// speed s in [1,100] the step interpolates between s pixels and the whole
// remaining distance: at s == 100 the scroll finishes in one dispatch.
func (c *Cursor) wheelStep(remaining float64) float64 {
	if remaining == 0 {
		return 0
	}
	s := float64(c.cfg.ScrollSpeed)
	if s >= maxScrollSpeed {
		return remaining
	}
	mag := math.Abs(remaining)
	step := s + (mag-s)*(s/maxScrollSpeed)
	step = clampFloat(step, 0, mag)
	if remaining < 0 {
		return -step
	}
	return step
}

// fallbackScrollIntoView is the last strategy in the chain; its failure is
// only logged.
func (c *Cursor) fallbackScrollIntoView(ctx context.Context, h TargetHandle) {
	if err := c.driver.ScrollIntoView(ctx, h); err != nil {
		c.logger.Debug("scroll: scroll-into-view fallback failed", zap.Error(err))
	}
}
