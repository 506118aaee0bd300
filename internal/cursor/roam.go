// internal/cursor/roam.go
package cursor

import (
	"context"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

// Perlin parameters for the idle-motion jitter.
const (
	roamNoiseAlpha     = 2.0
	roamNoiseBeta      = 2.0
	roamNoiseOctaves   = 3
	roamJitterAmpl     = 4.0
	roamNoiseFrequency = 0.35
)

// ToggleRandomMove enables or disables ambient idle motion. Enabling starts
// a background roaming goroutine owned by the cursor; disabling cancels it
// and waits for it to exit. Toggling an already-matching state is a no-op.
func (c *Cursor) ToggleRandomMove(enabled bool) {
	if enabled {
		c.startRoaming()
		return
	}
	c.stopRoaming()
}

func (c *Cursor) startRoaming() {
	c.state.mu.Lock()
	if c.state.roamEnabled {
		c.state.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.state.roamEnabled = true
	c.state.roamCancel = cancel
	c.state.roamDone = done

	// The loop gets its own generator; the shared one belongs to directed
	// calls.
	seed := c.rng.Int63()
	c.state.mu.Unlock()

	go c.roam(ctx, rand.New(rand.NewSource(seed)), seed, done)
}

func (c *Cursor) stopRoaming() {
	c.state.mu.Lock()
	if !c.state.roamEnabled {
		c.state.mu.Unlock()
		return
	}
	cancel := c.state.roamCancel
	done := c.state.roamDone
	c.state.roamEnabled = false
	c.state.roamCancel = nil
	c.state.roamDone = nil
	c.state.mu.Unlock()

	cancel()
	<-done
}

// roam is the background idle-motion loop: while no directed move is active
// it drifts the pointer to random viewport points, then sleeps. Every
// failure in here is swallowed; ambient motion must never surface an error.
// It exits silently on cancellation or driver disconnect.
func (c *Cursor) roam(ctx context.Context, rng *rand.Rand, seed int64, done chan struct{}) {
	defer close(done)

	noiseX := perlin.NewPerlin(roamNoiseAlpha, roamNoiseBeta, roamNoiseOctaves, seed)
	noiseY := perlin.NewPerlin(roamNoiseAlpha, roamNoiseBeta, roamNoiseOctaves, seed+1)
	noiseT := 0.0

	for ctx.Err() == nil {
		if c.state.isMoving() {
			if err := c.sleep(ctx, 50*time.Millisecond); err != nil {
				return
			}
			continue
		}

		dest, err := c.driver.RandomViewportPoint(ctx)
		if err != nil {
			if ctx.Err() != nil || !c.driver.Connected() {
				return
			}
			c.logger.Debug("roam: viewport point unavailable", zap.Error(err))
			if err := c.sleep(ctx, c.roamPause(rng)); err != nil {
				return
			}
			continue
		}

		// Perlin drift keeps successive idle targets from forming a
		// piecewise-linear pattern.
		noiseT += roamNoiseFrequency
		dest.X += noiseX.Noise1D(noiseT) * roamJitterAmpl
		dest.Y += noiseY.Noise1D(noiseT) * roamJitterAmpl
		dest = clampNonNegative(dest)

		traj := c.roamTrajectory(rng, c.Location(), dest)
		if err := c.tracePath(ctx, traj, c.state.isMoving); err != nil {
			if ctx.Err() != nil || !c.driver.Connected() {
				return
			}
			c.logger.Debug("roam: trajectory aborted", zap.Error(err))
		}

		if err := c.sleep(ctx, c.roamPause(rng)); err != nil {
			return
		}
	}
}

func (c *Cursor) roamTrajectory(rng *rand.Rand, from, dest Point) []TimedPoint {
	opts := PathOptions{MoveSpeed: c.cfg.MoveSpeed}
	if c.cfg.UseTimestamps {
		return TimedPath(rng, c.clock, from, dest, opts)
	}
	points := Path(rng, from, dest, opts)
	timed := make([]TimedPoint, len(points))
	for i, p := range points {
		timed[i] = TimedPoint{Point: p}
	}
	return timed
}

func (c *Cursor) roamPause(rng *rand.Rand) time.Duration {
	delay := c.cfg.RoamDelay
	if c.cfg.RandomizeRoamDelay && delay > 0 {
		delay = time.Duration(rng.Int63n(int64(delay) + 1))
	}
	return delay
}

// sleep waits without involving the driver so roaming keeps its cadence even
// when the transport is briefly unavailable.
func (c *Cursor) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
