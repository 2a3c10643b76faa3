// game runs the platformer sandbox and its headless tools.
//
// Usage:
//
//	game play [--level demo] [--config dir] [--watch] [--record file]
//	game replay <file> [--level name]
//	game path --from x,y --to x,y [--level demo]
//
// Global flags:
//
//	--config <dir>      - Read YAML from dir instead of the embedded configs
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

var (
	flagConfig   string
	flagLevel    string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "Platformer character and pathfinding sandbox",
	Long: `game runs a single level with a controllable player and pursuing
enemies, replays recorded input headlessly, and answers pathfinding
queries against a level's navigation grid.

Available commands:
  play    - Open the sandbox window
  replay  - Run a recorded input file and print the final state
  path    - Print a level grid with the path between two points`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config directory (default: embedded configs)")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "demo", "Level name under levels/")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(pathCmd)
}

// newLoader reads from --config when set, otherwise from the embedded tree.
func newLoader() (*config.Loader, error) {
	if flagConfig != "" {
		return config.NewLoader(flagConfig), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("embedded configs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadGame loads the shared configs and one level.
func loadGame(level string) (*config.GameConfig, *config.LevelConfig, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	lvl, err := loader.LoadLevel(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, lvl, nil
}
