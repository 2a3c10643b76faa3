package main

import (
	"errors"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/platformcore/internal/application/game"
	"github.com/younwookim/platformcore/internal/application/scene/sandbox"
	"github.com/younwookim/platformcore/internal/application/sim"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

var (
	flagWatch  bool
	flagRecord string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the sandbox window",
	Long: `Open the sandbox window on a level.

Controls:
  A/D, Left/Right  - Move
  W/Space          - Jump (hold for full height)
  S/Down           - Crouch
  Shift/K          - Roll, or slide while crouching
  J                - Attack (press again to combo)
  Tab              - Debug overlay
  Esc              - Pause
  Z/R              - Restart after game over
  F5               - Save recording
  Q                - Quit

Examples:
  game play
  game play --config ./cmd/game/configs --watch
  game play --record run.json`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Rebuild the level when YAML under --config changes")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (e.g. --record replay.json)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagWatch && flagConfig == "" {
		return errors.New("--watch needs --config pointing at a directory")
	}

	cfg, _, err := loadGame(flagLevel)
	if err != nil {
		return err
	}

	// Recorded sessions search paths inline so replays match.
	opts := sim.Options{Logger: logger.WithPrefix("sim"), AsyncPaths: !cmd.Flags().Changed("record")}
	build := func() (*sim.World, error) {
		cfg, level, err := loadGame(flagLevel)
		if err != nil {
			return nil, err
		}
		return sim.New(cfg, level, opts)
	}

	sceneOpts := []sandbox.Option{sandbox.WithLogger(logger.WithPrefix("sandbox"))}
	if cmd.Flags().Changed("record") {
		sceneOpts = append(sceneOpts, sandbox.WithRecording(flagRecord))
	}

	if flagWatch {
		watcher, err := config.NewWatcher(flagConfig, filepath.Join(flagConfig, "levels"))
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
		sceneOpts = append(sceneOpts, sandbox.WithReload(reloads(watcher)))
	}

	s, err := sandbox.New(build, cfg.Physics, sceneOpts...)
	if err != nil {
		return err
	}

	display := cfg.Physics.Display
	g := game.New(s, display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Platform Sandbox")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// reloads turns file events into coalesced reload signals.
func reloads(w *config.Watcher) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				logger.Info("config changed", "file", path)
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "err", err)
			}
		}
	}()
	return out
}
