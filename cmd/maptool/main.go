// maptool is a CLI utility for inspecting and previewing ascii3d maps.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/ascii3d/internal/assets"
	"github.com/Faultbox/ascii3d/internal/config"
	"github.com/Faultbox/ascii3d/internal/engine/display"
	"github.com/Faultbox/ascii3d/internal/game"
	"github.com/Faultbox/ascii3d/internal/logger"
	"github.com/Faultbox/ascii3d/internal/world"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "validate", "check":
		err = cmdValidate(args)
	case "render":
		err = cmdRender(args)
	case "path":
		err = cmdPath(args)
	case "list", "ls":
		err = cmdList(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`maptool - ascii3d map utility

Usage:
  maptool <command> [options]

Commands:
  info <map>                 Show map size, symbols and spawn point
  validate <map> [map...]    Check that maps build
  render [options] <map>     Render one frame as text
  path <map> [x y] <x y>     Show the shortest walk between two cells
  list [-dir path]           List available maps

A map is a built-in or search path name ("classic") or a file path.

Examples:
  maptool info classic
  maptool validate levels/*.txt
  maptool render -w 100 -h 40 -heading 90 pillars
  maptool path cellar 13 7
  maptool list -dir ./levels`)
}

// newManager returns a manager with the user map dir and extra dirs.
func newManager(dirs []string) (*assets.Manager, error) {
	m := assets.NewManager()
	if err := m.AddDir(config.MapDir()); err != nil {
		logger.Debug("user map dir not used", zap.Error(err))
	}
	for _, d := range dirs {
		if err := m.AddDir(d); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// mapConfig selects arg as a file when it exists on disk, else as a name.
func mapConfig(base config.MapConfig, arg string) config.MapConfig {
	mc := base
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		mc.Path = arg
	} else {
		mc.Name = arg
		mc.Path = ""
	}
	return mc
}

type dirList []string

func (d *dirList) String() string     { return fmt.Sprint(*d) }
func (d *dirList) Set(v string) error { *d = append(*d, v); return nil }

func openGrid(arg string, dirs []string, empty, player string) (*world.Grid, *assets.Manager, error) {
	m, err := newManager(dirs)
	if err != nil {
		return nil, nil, err
	}
	mc := mapConfig(config.Default().Map, arg)
	if empty != "" {
		mc.Empty = empty
	}
	if player != "" {
		mc.Player = player
	}
	g, err := assets.OpenGrid(m, mc)
	if err != nil {
		return nil, nil, err
	}
	return g, m, nil
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	var dirs dirList
	fs.Var(&dirs, "dir", "Extra map directory (repeatable)")
	empty := fs.String("empty", "", "Empty symbol for text maps")
	player := fs.String("player", "", "Spawn marker for text maps")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: maptool info <map>")
	}

	grid, m, err := openGrid(fs.Arg(0), dirs, *empty, *player)
	if err != nil {
		return err
	}
	defer m.Close()

	fmt.Printf("Map:     %s\n", grid.Name())
	if src, ok := m.Source(fs.Arg(0)); ok {
		fmt.Printf("Source:  %s\n", src)
	}
	fmt.Printf("Size:    %d x %d\n", grid.Width(), grid.Height())
	fmt.Printf("Empty:   %q\n", grid.EmptySymbol())
	spawn, err := spawnCell(grid)
	if err != nil {
		return err
	}
	if x, y, ok := grid.FindPlayer(); ok {
		fmt.Printf("Spawn:   marker at (%d, %d)\n", x, y)
	} else {
		fmt.Printf("Spawn:   center cell (%d, %d)\n", spawn.X, spawn.Y)
	}
	reach := len(grid.Reachable(spawn))
	fmt.Printf("Reach:   %d of %d open cells\n", reach, reach+len(grid.Unreachable(spawn)))
	fmt.Println()
	fmt.Println("Cells by symbol:")

	type symStat struct {
		sym   world.Symbol
		count int
	}
	var stats []symStat
	for sym, count := range grid.CountBySymbol() {
		stats = append(stats, symStat{sym, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].sym < stats[j].sym
	})
	for _, s := range stats {
		fmt.Printf("  %-6q %d\n", rune(s.sym), s.count)
	}
	return nil
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var dirs dirList
	fs.Var(&dirs, "dir", "Extra map directory (repeatable)")
	strict := fs.Bool("strict", false, "Fail maps with open cells the spawn cannot reach")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: maptool validate <map> [map...]")
	}

	failed := 0
	for _, arg := range fs.Args() {
		grid, m, err := openGrid(arg, dirs, "", "")
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", arg, err)
			failed++
			continue
		}
		m.Close()
		spawn, err := spawnCell(grid)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", arg, err)
			failed++
			continue
		}
		if lost := grid.Unreachable(spawn); len(lost) > 0 {
			logger.Sugar.Warnf("%s: %d open cells unreachable from spawn, first at (%d, %d)",
				arg, len(lost), lost[0].X, lost[0].Y)
			if *strict {
				fmt.Printf("FAIL  %s: %d unreachable cells\n", arg, len(lost))
				failed++
				continue
			}
		}
		fmt.Printf("ok    %s (%dx%d)\n", arg, grid.Width(), grid.Height())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d maps failed", failed, fs.NArg())
	}
	return nil
}

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var dirs dirList
	fs.Var(&dirs, "dir", "Extra map directory (repeatable)")
	width := fs.Int("w", 80, "Frame width in cells")
	height := fs.Int("h", 30, "Frame height in cells")
	fov := fs.Float64("fov", 90, "Field of view in degrees")
	heading := fs.Float64("heading", 180, "Camera heading in degrees")
	minimap := fs.Bool("minimap", false, "Draw the minimap")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: maptool render [options] <map>")
	}

	grid, m, err := openGrid(fs.Arg(0), dirs, "", "")
	if err != nil {
		return err
	}
	defer m.Close()

	cfg := config.Default()
	cfg.Graphics.Margin = 0
	cfg.Camera.FOV = *fov
	cfg.Camera.Heading = *heading
	cfg.Overlay = config.OverlayConfig{ShowMinimap: *minimap}
	cfg.Game.MaxFrames = 1
	if err := cfg.Validate(); err != nil {
		return err
	}

	rec := display.NewRecorder(*width, *height)
	g, err := game.New(cfg, grid, rec)
	if err != nil {
		return err
	}
	if err := g.Run(context.Background()); err != nil {
		return err
	}

	fmt.Println(rec.Text())
	return nil
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var dirs dirList
	fs.Var(&dirs, "dir", "Extra map directory (repeatable)")
	fs.Parse(args)

	m, err := newManager(dirs)
	if err != nil {
		return err
	}
	defer m.Close()

	for _, name := range m.List() {
		fmt.Println(name)
	}
	return nil
}

// spawnCell returns the cell the camera starts in.
func spawnCell(grid *world.Grid) (world.Cell, error) {
	p, err := grid.SpawnPoint()
	if err != nil {
		return world.Cell{}, err
	}
	x, y := p.Floor()
	return world.Cell{X: x, Y: y}, nil
}

func parseCell(xs, ys string) (world.Cell, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return world.Cell{}, fmt.Errorf("bad x %q: %w", xs, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return world.Cell{}, fmt.Errorf("bad y %q: %w", ys, err)
	}
	return world.Cell{X: x, Y: y}, nil
}

func cmdPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	var dirs dirList
	fs.Var(&dirs, "dir", "Extra map directory (repeatable)")
	fs.Parse(args)

	if fs.NArg() != 3 && fs.NArg() != 5 {
		return fmt.Errorf("usage: maptool path <map> [x y] <x y>")
	}

	grid, m, err := openGrid(fs.Arg(0), dirs, "", "")
	if err != nil {
		return err
	}
	defer m.Close()

	var start world.Cell
	rest := fs.Args()[1:]
	if len(rest) == 2 {
		if start, err = spawnCell(grid); err != nil {
			return err
		}
	} else {
		if start, err = parseCell(rest[0], rest[1]); err != nil {
			return err
		}
		rest = rest[2:]
	}
	goal, err := parseCell(rest[0], rest[1])
	if err != nil {
		return err
	}

	path := grid.FindPath(start, goal)
	if path == nil {
		return fmt.Errorf("no path from (%d, %d) to (%d, %d)", start.X, start.Y, goal.X, goal.Y)
	}

	rows := make([][]rune, grid.Height())
	for y, row := range grid.Rows() {
		rows[y] = []rune(row)
	}
	for _, c := range path {
		rows[c.Y][c.X] = '*'
	}
	rows[start.Y][start.X] = 'S'
	rows[goal.Y][goal.X] = 'G'

	for _, row := range rows {
		fmt.Println(string(row))
	}
	fmt.Printf("%d steps\n", len(path)-1)
	return nil
}
