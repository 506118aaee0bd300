// internal/cursor/cursor.go
package cursor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cursor orchestrates human-like pointer movement against a single
// automation target. It owns the pointer location exclusively: all mutation
// flows through the dispatch loop. A cursor is a single logical actor:
// directed calls are not run concurrently with each other, and the roaming
// scheduler yields to directed calls via the moving flag.
type Cursor struct {
	driver Driver
	logger *zap.Logger
	cfg    Config
	rng    *rand.Rand
	clock  Clock

	// state below is guarded by the accessors in state.go
	state cursorState
}

// New creates a cursor over the given driver. A nil logger is replaced with
// a no-op logger; Config zero values are filled from DefaultConfig where a
// zero is not meaningful.
func New(driver Driver, logger *zap.Logger, cfg Config) *Cursor {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.OvershootThreshold <= 0 {
		cfg.OvershootThreshold = def.OvershootThreshold
	}
	if cfg.OvershootRadius <= 0 {
		cfg.OvershootRadius = def.OvershootRadius
	}
	if cfg.CorrectionSpread <= 0 {
		cfg.CorrectionSpread = def.CorrectionSpread
	}
	if cfg.MaxTries <= 0 {
		cfg.MaxTries = def.MaxTries
	}
	if cfg.SelectorWait <= 0 {
		cfg.SelectorWait = def.SelectorWait
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	if cfg.RoamDelay <= 0 {
		cfg.RoamDelay = def.RoamDelay
	}
	if cfg.ScrollSpeed <= 0 {
		cfg.ScrollSpeed = def.ScrollSpeed
	}
	if cfg.ScrollMargin <= 0 {
		cfg.ScrollMargin = def.ScrollMargin
	}
	if cfg.ClickHoldMin <= 0 {
		cfg.ClickHoldMin = def.ClickHoldMin
	}
	if cfg.ClickHoldMax <= cfg.ClickHoldMin {
		cfg.ClickHoldMax = cfg.ClickHoldMin + def.ClickHoldMax
	}

	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	return &Cursor{
		driver: driver,
		logger: logger.Named("cursor").With(zap.String("session", uuid.NewString())),
		cfg:    cfg,
		rng:    rng,
		clock:  clock,
	}
}

// Location returns the last dispatched pointer position.
func (c *Cursor) Location() Point {
	return c.state.location()
}

// Close stops the roaming scheduler and waits for it to exit.
func (c *Cursor) Close() {
	c.stopRoaming()
}

// MoveTo performs a directed move to an absolute coordinate.
func (c *Cursor) MoveTo(ctx context.Context, dest Point) error {
	prev := c.state.beginDirected()
	defer c.state.endDirected(prev)

	opts := PathOptions{MoveSpeed: c.cfg.MoveSpeed}
	for _, traj := range c.trajectoriesTo(c.Location(), dest, opts) {
		if err := c.tracePath(ctx, traj, nil); err != nil {
			return c.swallowDisconnect(err)
		}
	}
	c.state.setLocation(dest)
	return nil
}

// MoveBy performs a directed move relative to the current location.
func (c *Cursor) MoveBy(ctx context.Context, dx, dy float64) error {
	return c.MoveTo(ctx, c.Location().Add(Point{X: dx, Y: dy}))
}

// Move resolves a selector and runs the full move state machine: acquire,
// ensure visibility, compute a destination, dispatch (with overshoot when
// warranted), verify arrival and retry up to the configured cap.
func (c *Cursor) Move(ctx context.Context, selector string, opts MoveOptions) error {
	prev := c.state.beginDirected()
	defer c.state.endDirected(prev)

	wait := opts.WaitFor
	if wait <= 0 {
		wait = c.cfg.SelectorWait
	}

	for attempt := 1; attempt <= c.cfg.MaxTries; attempt++ {
		arrived, err := c.attemptMove(ctx, selector, wait, opts)
		if err != nil {
			return c.swallowDisconnect(err)
		}
		if arrived {
			return nil
		}
		c.logger.Debug("arrival verification failed",
			zap.String("selector", selector),
			zap.Int("attempt", attempt))
	}
	return fmt.Errorf("%w: %q not reached after %d attempts",
		ErrMaxRetriesExceeded, selector, c.cfg.MaxTries)
}

// Click moves to the target (when a selector is given) and presses the
// configured button at the current location with a randomized hold time.
func (c *Cursor) Click(ctx context.Context, selector string, opts ClickOptions) error {
	if opts.Button == "" {
		opts.Button = ButtonLeft
	}
	if opts.ClickCount <= 0 {
		opts.ClickCount = 1
	}

	// The whole click is one directed call: the flag is held from before
	// the approach move until after the release, so roaming cannot drag
	// the pointer off the verified destination between the two.
	prev := c.state.beginDirected()
	defer c.state.endDirected(prev)

	if selector != "" {
		if err := c.Move(ctx, selector, opts.MoveOptions); err != nil {
			return err
		}
	}

	// Brief pause between arriving and pressing.
	if err := c.driver.Sleep(ctx, time.Duration(50+c.rng.Intn(100))*time.Millisecond); err != nil {
		return err
	}

	pos := c.Location()
	if err := c.driver.DispatchMouseButton(ctx, pos, true, opts.Button, opts.ClickCount); err != nil {
		if !c.driver.Connected() {
			c.logger.Debug("click aborted: driver disconnected")
			return nil
		}
		return err
	}

	hold := opts.HoldDuration
	if hold <= 0 {
		span := c.cfg.ClickHoldMax - c.cfg.ClickHoldMin
		hold = c.cfg.ClickHoldMin + time.Duration(c.rng.Int63n(int64(span)))
	}
	if err := c.driver.Sleep(ctx, hold); err != nil {
		return err
	}

	if err := c.driver.DispatchMouseButton(ctx, pos, false, opts.Button, opts.ClickCount); err != nil {
		if !c.driver.Connected() {
			c.logger.Debug("click release lost: driver disconnected")
			return nil
		}
		return err
	}
	return nil
}

// attemptMove runs one iteration of the move state machine. It returns
// (false, nil) when the attempt should be retried.
func (c *Cursor) attemptMove(ctx context.Context, selector string, wait time.Duration, opts MoveOptions) (bool, error) {
	h, err := c.driver.ResolveTarget(ctx, selector, wait)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if !c.driver.Connected() {
			return false, errConnectionLost
		}
		return false, fmt.Errorf("%w: %q: %w", ErrTargetNotFound, selector, err)
	}

	if visible, verr := c.driver.IntersectsViewport(ctx, h); verr == nil && !visible {
		c.ensureVisible(ctx, h)
		if serr := c.driver.Sleep(ctx, c.cfg.SettleDelay); serr != nil {
			return false, serr
		}
	}

	box, err := c.driver.BoundingRect(ctx, h)
	if err != nil || box == nil {
		if !c.driver.Connected() {
			return false, errConnectionLost
		}
		// Geometry vanished mid-acquire; re-resolve on the next attempt.
		return false, nil
	}

	dest := c.destinationIn(*box, opts)
	popts := PathOptions{
		MoveSpeed:      opts.MoveSpeed,
		SpreadOverride: opts.SpreadOverride,
		TargetWidth:    box.Width,
	}
	if popts.MoveSpeed <= 0 {
		popts.MoveSpeed = c.cfg.MoveSpeed
	}

	for _, traj := range c.trajectoriesTo(c.Location(), dest, popts) {
		if terr := c.tracePath(ctx, traj, nil); terr != nil {
			return false, terr
		}
	}

	// The page may have reflowed during the animation; verify against
	// fresh geometry.
	check, err := c.driver.BoundingRect(ctx, h)
	if err != nil || check == nil {
		if !c.driver.Connected() {
			return false, errConnectionLost
		}
		return false, nil
	}
	if !check.containsHalfOpen(c.Location()) {
		return false, nil
	}

	c.state.setLocation(dest)
	return true, nil
}

// destinationIn picks the destination point for a target rectangle: the
// caller-supplied offset from the top-left corner, or a uniformly random
// point inside the padded rectangle.
func (c *Cursor) destinationIn(box Rect, opts MoveOptions) Point {
	if opts.Offset != nil {
		return box.TopLeft().Add(*opts.Offset)
	}

	pct := c.cfg.PaddingPercent
	if opts.PaddingPercent != nil {
		pct = *opts.PaddingPercent
	}
	pct = clampFloat(pct, 0, 100)

	padX := box.Width * pct / 100
	padY := box.Height * pct / 100
	return Point{
		X: box.X + padX/2 + c.rng.Float64()*(box.Width-padX),
		Y: box.Y + padY/2 + c.rng.Float64()*(box.Height-padY),
	}
}

// trajectoriesTo plans the dispatch sequences for a directed move. Long
// moves are split into an overshoot trajectory past the destination and a
// tight, nearly straight correction back to it.
func (c *Cursor) trajectoriesTo(from, dest Point, opts PathOptions) [][]TimedPoint {
	if from.Dist(dest) <= c.cfg.OvershootThreshold {
		return [][]TimedPoint{c.synthesize(from, dest, opts)}
	}

	over := c.overshootPoint(dest)
	correction := opts
	correction.SpreadOverride = &c.cfg.CorrectionSpread
	return [][]TimedPoint{
		c.synthesize(from, over, opts),
		c.synthesize(over, dest, correction),
	}
}

// overshootPoint samples an area-uniform random point on the disk of the
// configured radius centered on the destination.
func (c *Cursor) overshootPoint(dest Point) Point {
	r := c.cfg.OvershootRadius * math.Sqrt(c.rng.Float64())
	theta := c.rng.Float64() * 2 * math.Pi
	return Point{X: dest.X + r*math.Cos(theta), Y: dest.Y + r*math.Sin(theta)}
}

// synthesize builds one trajectory, timestamped per configuration.
func (c *Cursor) synthesize(from, dest Point, opts PathOptions) []TimedPoint {
	if c.cfg.UseTimestamps {
		return TimedPath(c.rng, c.clock, from, dest, opts)
	}
	points := Path(c.rng, from, dest, opts)
	timed := make([]TimedPoint, len(points))
	for i, p := range points {
		timed[i] = TimedPoint{Point: p}
	}
	return timed
}

// tracePath dispatches a trajectory point by point, updating the cursor
// location after every successful dispatch. Individual dispatch failures are
// logged and skipped; a lost connection aborts the whole trajectory. The
// optional abort callback is consulted before each point, giving cooperative
// mid-trajectory cancellation.
func (c *Cursor) tracePath(ctx context.Context, points []TimedPoint, abort func() bool) error {
	for _, p := range points {
		if err := ctx.Err(); err != nil {
			return err
		}
		if abort != nil && abort() {
			return nil
		}
		if err := c.driver.DispatchMouseMove(ctx, p); err != nil {
			if !c.driver.Connected() {
				return errConnectionLost
			}
			c.logger.Debug("pointer dispatch failed, skipping point",
				zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.Error(err))
			continue
		}
		c.state.setLocation(p.Point)
	}
	return nil
}

// swallowDisconnect resolves a lost-connection abort to a silent success;
// every other error passes through.
func (c *Cursor) swallowDisconnect(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errConnectionLost) {
		c.logger.Debug("operation aborted: driver disconnected")
		return nil
	}
	return err
}
