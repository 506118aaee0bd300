// -- cmd/trace.go --
package cmd

import (
	"fmt"
	"math/rand"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/driftcursor/driftcursor/internal/cursor"
)

var traceFlags struct {
	fromX, fromY float64
	toX, toY     float64
	width        float64
	speed        float64
	spread       float64
	timestamps   bool
	seed         int64
}

// traceCmd synthesizes a trajectory offline and writes it to stdout, one
// JSON document per run. Useful for inspecting the motion model without a
// browser.
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Synthesize a pointer trajectory and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := traceFlags.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		opts := cursor.PathOptions{
			MoveSpeed:   traceFlags.speed,
			TargetWidth: traceFlags.width,
		}
		if cmd.Flags().Changed("spread") {
			spread := traceFlags.spread
			opts.SpreadOverride = &spread
		}

		start := cursor.Point{X: traceFlags.fromX, Y: traceFlags.fromY}
		dest := cursor.Point{X: traceFlags.toX, Y: traceFlags.toY}

		var doc any
		if traceFlags.timestamps {
			doc = cursor.TimedPath(rng, nil, start, dest, opts)
		} else {
			doc = cursor.Path(rng, start, dest, opts)
		}

		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding trajectory: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	traceCmd.Flags().Float64Var(&traceFlags.fromX, "from-x", 0, "start X coordinate")
	traceCmd.Flags().Float64Var(&traceFlags.fromY, "from-y", 0, "start Y coordinate")
	traceCmd.Flags().Float64Var(&traceFlags.toX, "to-x", 0, "destination X coordinate")
	traceCmd.Flags().Float64Var(&traceFlags.toY, "to-y", 0, "destination Y coordinate")
	traceCmd.Flags().Float64Var(&traceFlags.width, "width", 0, "effective target width for the difficulty model")
	traceCmd.Flags().Float64Var(&traceFlags.speed, "speed", 0, "movement speed term (0 randomizes per call)")
	traceCmd.Flags().Float64Var(&traceFlags.spread, "spread", 0, "fixed curve anchor spread")
	traceCmd.Flags().BoolVar(&traceFlags.timestamps, "timestamps", false, "attach per-point timestamps")
	traceCmd.Flags().Int64Var(&traceFlags.seed, "seed", 0, "RNG seed (0 uses wall-clock time)")
	_ = traceCmd.MarkFlagRequired("to-x")
	_ = traceCmd.MarkFlagRequired("to-y")

	rootCmd.AddCommand(traceCmd)
}
