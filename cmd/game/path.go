package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/younwookim/platformcore/internal/application/system"
	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/navigation"
)

var (
	flagFrom string
	flagTo   string
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print a level grid with the path between two points",
	Long: `Search the level's navigation grid between two world positions and
print the grid: '#' blocked, '.' open, '*' on the path, 'S' start, 'E' end.

Examples:
  game path --from 40,200 --to 440,200
  game path --level demo --from 40,200 --to 600,40`,
	Args: cobra.NoArgs,
	RunE: runPath,
}

func init() {
	pathCmd.Flags().StringVar(&flagFrom, "from", "", "Start position x,y in world units")
	pathCmd.Flags().StringVar(&flagTo, "to", "", "End position x,y in world units")
	_ = pathCmd.MarkFlagRequired("from")
	_ = pathCmd.MarkFlagRequired("to")
}

func runPath(cmd *cobra.Command, args []string) error {
	from, err := parsePoint(flagFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parsePoint(flagTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	_, level, err := loadGame(flagLevel)
	if err != nil {
		return err
	}
	stage := system.LoadStage(level)
	grid, err := system.LoadGrid(level, stage)
	if err != nil {
		return err
	}

	finder := navigation.NewPathfinder(grid, navigation.NewPathPool(), navigation.WithLogger(logger.WithPrefix("path")))
	path := finder.FindPath(from, to)
	if path != nil {
		defer path.Release()
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderPath(grid, from, to, path))
	if path == nil {
		fmt.Fprintln(out, "no path")
		return nil
	}
	fmt.Fprintf(out, "cost %d, %d waypoints\n", path.Cost(), path.Len())
	return nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (entity.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return entity.Vec2{}, errors.New("want x,y")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return entity.Vec2{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return entity.Vec2{}, fmt.Errorf("y: %w", err)
	}
	return entity.Vec2{X: x, Y: y}, nil
}

// renderPath draws the grid one character per cell. path may be nil.
func renderPath(grid *navigation.Grid, from, to entity.Vec2, path *navigation.Path) string {
	w, h := grid.Width(), grid.Height()
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = make([]byte, w)
		for x := range rows[y] {
			rows[y][x] = '.'
			if !grid.Walkable(x, y) {
				rows[y][x] = '#'
			}
		}
	}

	mark := func(p entity.Vec2, c byte) {
		if x, y := grid.WorldToCell(p); grid.InBounds(x, y) {
			rows[y][x] = c
		}
	}
	if path != nil {
		for _, p := range path.Points() {
			mark(p, '*')
		}
	}
	mark(from, 'S')
	mark(to, 'E')

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
