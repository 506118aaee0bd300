// internal/cursor/options.go
package cursor

import (
	"math/rand"
	"time"
)

// Config defines the session persona of a cursor: how far it overshoots, how
// often it retries, how it scrolls and how it idles. DefaultConfig returns
// the values the motion models were tuned against.
type Config struct {
	// OvershootThreshold is the Euclidean distance above which a directed
	// move is split into an overshoot trajectory plus a correction.
	OvershootThreshold float64
	// OvershootRadius bounds the disk around the destination from which
	// the overshoot point is sampled.
	OvershootRadius float64
	// CorrectionSpread is the fixed anchor spread of the corrective
	// trajectory, producing a nearly straight approach.
	CorrectionSpread float64

	// MaxTries caps the acquire/dispatch/verify loop per directed move.
	MaxTries int
	// PaddingPercent shrinks the random destination area inside a target
	// rectangle: 0 allows anywhere in the rect, 100 forces the center.
	PaddingPercent float64
	// MoveSpeed fixes the trajectory speed term; zero randomizes it per
	// trajectory.
	MoveSpeed float64
	// UseTimestamps attaches synthesized event times to dispatched points.
	UseTimestamps bool

	// SelectorWait bounds target resolution when a call supplies no
	// explicit wait.
	SelectorWait time.Duration
	// SettleDelay is slept after a visibility scroll before geometry is
	// read again.
	SettleDelay time.Duration

	// RoamDelay is the pause between idle roaming movements.
	RoamDelay time.Duration
	// RandomizeRoamDelay draws each roam pause uniformly from
	// [0, RoamDelay] instead of using it verbatim.
	RandomizeRoamDelay bool

	// ScrollSpeed is the wheel-step magnitude in pixels, 1..100. At 100
	// the whole remaining distance is covered in a single step.
	ScrollSpeed int
	// ScrollMargin is added around a target's rectangle when testing
	// viewport containment.
	ScrollMargin float64

	// ClickHoldMin and ClickHoldMax bound the randomized press-to-release
	// duration of a click.
	ClickHoldMin time.Duration
	ClickHoldMax time.Duration

	// Rng makes every random draw of the cursor deterministic when
	// supplied. Nil seeds a generator from wall-clock time.
	Rng *rand.Rand
	// Clock pins the timing model's wall clock in tests.
	Clock Clock
}

// DefaultConfig returns the tuned defaults for a cursor session.
func DefaultConfig() Config {
	return Config{
		OvershootThreshold: 500,
		OvershootRadius:    120,
		CorrectionSpread:   10,
		MaxTries:           10,
		PaddingPercent:     0,
		UseTimestamps:      true,
		SelectorWait:       30 * time.Second,
		SettleDelay:        500 * time.Millisecond,
		RoamDelay:          2 * time.Second,
		RandomizeRoamDelay: true,
		ScrollSpeed:        100,
		ScrollMargin:       30,
		ClickHoldMin:       40 * time.Millisecond,
		ClickHoldMax:       150 * time.Millisecond,
	}
}

// MoveOptions tunes a single directed move.
type MoveOptions struct {
	// Offset, when set, is the destination relative to the target's
	// top-left corner, bypassing the random in-rect pick.
	Offset *Point
	// PaddingPercent overrides the configured destination padding for
	// this move when non-nil.
	PaddingPercent *float64
	// WaitFor overrides the configured selector wait.
	WaitFor time.Duration
	// MoveSpeed overrides the configured speed term.
	MoveSpeed float64
	// SpreadOverride fixes the trajectory's anchor spread.
	SpreadOverride *float64
}

// ClickOptions tunes a click: the move toward the target plus the button
// press itself.
type ClickOptions struct {
	MoveOptions

	// Button defaults to the left button.
	Button MouseButton
	// ClickCount defaults to a single click.
	ClickCount int
	// HoldDuration fixes the press-to-release time; zero draws it from
	// the configured bounds.
	HoldDuration time.Duration
}
