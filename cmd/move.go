// -- cmd/move.go --
package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/driftcursor/driftcursor/internal/browser"
	"github.com/driftcursor/driftcursor/internal/config"
	"github.com/driftcursor/driftcursor/internal/cursor"
	"github.com/driftcursor/driftcursor/internal/observability"
)

var moveFlags struct {
	url      string
	selector string
	click    bool
	roam     bool
	linger   time.Duration
	seed     int64
}

// moveCmd drives a live browser: navigate to a page, then move to (and
// optionally click) a selector with synthesized pointer motion.
var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the pointer to a selector in a live browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		session, err := browser.NewSession(ctx, cfg.Browser, logger)
		if err != nil {
			return err
		}
		defer session.Close()

		cur := cursor.New(session.Driver(), logger, motionConfig(cfg.Cursor))
		defer cur.Close()

		g, gctx := errgroup.WithContext(ctx)
		done := make(chan struct{})
		g.Go(func() error {
			defer close(done)
			return runInteraction(gctx, session, cur)
		})
		g.Go(func() error {
			// Tear the tab down on cancellation so a blocked CDP call
			// cannot outlive the signal.
			select {
			case <-gctx.Done():
				session.Close()
			case <-done:
			}
			return nil
		})
		return g.Wait()
	},
}

func runInteraction(ctx context.Context, session *browser.Session, cur *cursor.Cursor) error {
	if err := session.Navigate(moveFlags.url); err != nil {
		return err
	}

	if moveFlags.roam {
		cur.ToggleRandomMove(true)
	}

	if moveFlags.selector != "" {
		var err error
		if moveFlags.click {
			err = cur.Click(ctx, moveFlags.selector, cursor.ClickOptions{})
		} else {
			err = cur.Move(ctx, moveFlags.selector, cursor.MoveOptions{})
		}
		if err != nil {
			return fmt.Errorf("interacting with %q: %w", moveFlags.selector, err)
		}
	}

	if moveFlags.linger > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(moveFlags.linger):
		}
	}
	return nil
}

// motionConfig maps the file-backed cursor section onto the motion model's
// runtime knobs.
func motionConfig(c config.CursorConfig) cursor.Config {
	out := cursor.Config{
		OvershootThreshold: c.OvershootThreshold,
		OvershootRadius:    c.OvershootRadius,
		CorrectionSpread:   c.CorrectionSpread,
		MaxTries:           c.MaxTries,
		PaddingPercent:     c.PaddingPercent,
		MoveSpeed:          c.MoveSpeed,
		UseTimestamps:      c.UseTimestamps,
		SelectorWait:       c.SelectorWait,
		SettleDelay:        c.SettleDelay,
		RoamDelay:          c.RoamDelay,
		RandomizeRoamDelay: c.RandomizeRoamDelay,
		ScrollSpeed:        c.ScrollSpeed,
		ScrollMargin:       c.ScrollMargin,
		ClickHoldMin:       c.ClickHoldMin,
		ClickHoldMax:       c.ClickHoldMax,
	}
	if moveFlags.seed != 0 {
		out.Rng = rand.New(rand.NewSource(moveFlags.seed))
	}
	return out
}

func init() {
	moveCmd.Flags().StringVar(&moveFlags.url, "url", "", "page to load")
	moveCmd.Flags().StringVar(&moveFlags.selector, "selector", "", "CSS selector to move to")
	moveCmd.Flags().BoolVar(&moveFlags.click, "click", false, "click the selector after arriving")
	moveCmd.Flags().BoolVar(&moveFlags.roam, "roam", false, "enable idle roaming between directed moves")
	moveCmd.Flags().DurationVar(&moveFlags.linger, "linger", 0, "keep the session open after the interaction")
	moveCmd.Flags().Int64Var(&moveFlags.seed, "seed", 0, "RNG seed (0 uses wall-clock time)")
	_ = moveCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(moveCmd)
}
