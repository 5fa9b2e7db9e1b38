// Package world holds the immutable grid the camera moves through.
package world

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Faultbox/ascii3d/pkg/formats"
	"github.com/Faultbox/ascii3d/pkg/math"
)

// Grid errors.
var (
	ErrEmptyMap     = errors.New("map has no cells")
	ErrRaggedRows   = errors.New("map rows have different lengths")
	ErrMapTooLarge  = errors.New("map is too large")
	ErrOpenBorder   = errors.New("map border is not closed by walls")
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrSpawnBlocked = errors.New("spawn cell is not open")
)

// MaxDimension bounds both grid axes.
const MaxDimension = 4096

// Symbol is the content of one grid cell.
type Symbol rune

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string(rune(s))
}

// Grid is a rectangular, immutable array of cell symbols. Cells are stored
// row-major, indexed [y*width + x].
type Grid struct {
	name   string
	width  int
	height int
	cells  []Symbol
	empty  Symbol
	player Symbol
}

// New builds a grid from equal-length rows. The outer ring of cells must not
// be walkable so every ray terminates inside the grid.
func New(rows []string, empty, player rune) (*Grid, error) {
	if len(rows) == 0 || rows[0] == "" {
		return nil, ErrEmptyMap
	}

	width := utf8.RuneCountInString(rows[0])
	height := len(rows)
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrMapTooLarge, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Symbol, 0, width*height),
		empty:  Symbol(empty),
		player: Symbol(player),
	}

	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedRows, y, n, width)
		}
		for _, r := range row {
			g.cells = append(g.cells, Symbol(r))
		}
	}

	if err := g.checkBorder(); err != nil {
		return nil, err
	}
	return g, nil
}

// FromASCII builds a grid from a parsed map description.
func FromASCII(m *formats.ASCIIMap) (*Grid, error) {
	g, err := New(m.Rows, m.Empty, m.Player)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", m.Name, err)
	}
	g.name = m.Name
	return g, nil
}

func (g *Grid) checkBorder() error {
	for x := 0; x < g.width; x++ {
		for _, y := range []int{0, g.height - 1} {
			if g.IsOpen(g.at(x, y)) {
				return fmt.Errorf("%w: cell (%d,%d)", ErrOpenBorder, x, y)
			}
		}
	}
	for y := 0; y < g.height; y++ {
		for _, x := range []int{0, g.width - 1} {
			if g.IsOpen(g.at(x, y)) {
				return fmt.Errorf("%w: cell (%d,%d)", ErrOpenBorder, x, y)
			}
		}
	}
	return nil
}

// Name returns the map name, if one was given.
func (g *Grid) Name() string { return g.name }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// EmptySymbol returns the walkable symbol.
func (g *Grid) EmptySymbol() Symbol { return g.empty }

// PlayerSymbol returns the spawn marker symbol.
func (g *Grid) PlayerSymbol() Symbol { return g.player }

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// CellAt returns the symbol at (x, y).
func (g *Grid) CellAt(x, y int) (Symbol, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.at(x, y), nil
}

func (g *Grid) at(x, y int) Symbol {
	return g.cells[y*g.width+x]
}

// IsEmpty reports whether s is the configured empty symbol.
func (g *Grid) IsEmpty(s Symbol) bool {
	return s == g.empty
}

// IsOpen reports whether s can be walked through and seen through: the empty
// symbol or the player spawn marker.
func (g *Grid) IsOpen(s Symbol) bool {
	return s == g.empty || s == g.player
}

// IsWalkable reports whether (x, y) is inside the grid and open.
func (g *Grid) IsWalkable(x, y int) bool {
	s, err := g.CellAt(x, y)
	if err != nil {
		return false
	}
	return g.IsOpen(s)
}

// Center returns the geometric center of the grid.
func (g *Grid) Center() math.Vec2 {
	return math.Vec2{X: float64(g.width) / 2, Y: float64(g.height) / 2}
}

// FindPlayer returns the first cell holding the spawn marker, scanning rows
// top to bottom.
func (g *Grid) FindPlayer() (x, y int, ok bool) {
	for i, s := range g.cells {
		if s == g.player {
			return i % g.width, i / g.width, true
		}
	}
	return 0, 0, false
}

// SpawnPoint returns the center of the spawn marker cell, or the grid center
// when the map has no marker. It fails with ErrSpawnBlocked when the center
// cell is a wall.
func (g *Grid) SpawnPoint() (math.Vec2, error) {
	if x, y, ok := g.FindPlayer(); ok {
		return math.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}, nil
	}
	c := g.Center()
	x, y := c.Floor()
	if !g.IsWalkable(x, y) {
		return c, fmt.Errorf("%w: cell (%d,%d) holds %q", ErrSpawnBlocked, x, y, g.at(x, y))
	}
	return c, nil
}

// Rows returns the grid as text rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		sb.Reset()
		for x := 0; x < g.width; x++ {
			sb.WriteRune(rune(g.at(x, y)))
		}
		rows[y] = sb.String()
	}
	return rows
}

// CountBySymbol returns the count of cells for each symbol.
func (g *Grid) CountBySymbol() map[Symbol]int {
	counts := make(map[Symbol]int)
	for _, s := range g.cells {
		counts[s]++
	}
	return counts
}
