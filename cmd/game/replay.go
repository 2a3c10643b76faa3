package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/platformcore/internal/application/replay"
	"github.com/younwookim/platformcore/internal/application/sim"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Run a recorded input file and print the final state",
	Long: `Run a recording made with 'game play --record' without a window
and print the final world snapshot as JSON. The level stored in the
recording is used unless --level is given.

Examples:
  game replay run.json
  game replay run.json --level demo`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}

	level := data.Level
	if cmd.Flags().Changed("level") || level == "" {
		level = flagLevel
	}
	cfg, lvl, err := loadGame(level)
	if err != nil {
		return err
	}

	w, err := sim.New(cfg, lvl, sim.Options{Logger: logger.WithPrefix("sim")})
	if err != nil {
		return err
	}
	defer w.Close()

	r := replay.NewReplayer(*data)
	logger.Info("replaying", "file", args[0], "level", level, "frames", r.TotalFrames(), "seed", r.Seed())
	snap := r.Play(w)

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
