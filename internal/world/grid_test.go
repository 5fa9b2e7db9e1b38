package world

import (
	"errors"
	"testing"

	"github.com/Faultbox/ascii3d/pkg/formats"
	"github.com/Faultbox/ascii3d/pkg/math"
)

// boxRows returns a width x height room walled with 'x'.
func boxRows(width, height int) []string {
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		row := make([]rune, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				row[x] = 'x'
			} else {
				row[x] = ' '
			}
		}
		rows[y] = string(row)
	}
	return rows
}

func mustGrid(t *testing.T, rows []string) *Grid {
	t.Helper()
	g, err := New(rows, ' ', 'p')
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestNew_RoundTrip(t *testing.T) {
	rows := []string{
		"xxxxxxx",
		"x y   x",
		"x  z  x",
		"x   p x",
		"xxxxxxx",
	}
	g := mustGrid(t, rows)

	if g.Width() != 7 || g.Height() != 5 {
		t.Fatalf("expected 7x5, got %dx%d", g.Width(), g.Height())
	}

	for y, row := range rows {
		for x, r := range []rune(row) {
			s, err := g.CellAt(x, y)
			if err != nil {
				t.Fatalf("CellAt(%d,%d) failed: %v", x, y, err)
			}
			if s != Symbol(r) {
				t.Errorf("CellAt(%d,%d) = %q, want %q", x, y, s, r)
			}
			if g.IsEmpty(s) != (r == ' ') {
				t.Errorf("IsEmpty(%q) = %v", s, g.IsEmpty(s))
			}
		}
	}

	got := g.Rows()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, got[i], rows[i])
		}
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"no rows", nil, ErrEmptyMap},
		{"empty row", []string{""}, ErrEmptyMap},
		{"ragged", []string{"xxx", "x x", "xxxx"}, ErrRaggedRows},
		{"open top", []string{"x x", "x x", "xxx"}, ErrOpenBorder},
		{"open side", []string{"xxx", "  x", "xxx"}, ErrOpenBorder},
		{"spawn on border", []string{"xpx", "x x", "xxx"}, ErrOpenBorder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, ' ', 'p')
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNew_TooLarge(t *testing.T) {
	rows := make([]string, MaxDimension+1)
	for i := range rows {
		rows[i] = "x"
	}
	if _, err := New(rows, ' ', 'p'); !errors.Is(err, ErrMapTooLarge) {
		t.Errorf("expected ErrMapTooLarge, got %v", err)
	}
}

func TestCellAt_OutOfBounds(t *testing.T) {
	g := mustGrid(t, boxRows(5, 5))

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {100, 100}} {
		if _, err := g.CellAt(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("CellAt(%d,%d): expected ErrOutOfBounds, got %v", c[0], c[1], err)
		}
		if g.IsWalkable(c[0], c[1]) {
			t.Errorf("IsWalkable(%d,%d) should be false outside the grid", c[0], c[1])
		}
	}
}

func TestIsOpen_PlayerMarker(t *testing.T) {
	g := mustGrid(t, []string{"xxxx", "x px", "xxxx"})

	if !g.IsOpen('p') || !g.IsOpen(' ') {
		t.Error("expected empty and player symbols to be open")
	}
	if g.IsEmpty('p') {
		t.Error("player marker must not count as the empty symbol")
	}
	if g.IsOpen('x') {
		t.Error("wall symbol must not be open")
	}
}

func TestSpawnPoint(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		want    math.Vec2
		wantErr error
	}{
		{"center", boxRows(5, 5), math.Vec2{X: 2.5, Y: 2.5}, nil},
		{"marker", []string{"xxxxx", "x  px", "x   x", "xxxxx"}, math.Vec2{X: 3.5, Y: 1.5}, nil},
		{"marker beats blocked center", []string{"xxxxx", "xp  x", "x x x", "x   x", "xxxxx"}, math.Vec2{X: 1.5, Y: 1.5}, nil},
		{"blocked center", []string{"xxxxx", "x   x", "x x x", "x   x", "xxxxx"}, math.Vec2{}, ErrSpawnBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mustGrid(t, tt.rows).SpawnPoint()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SpawnPoint: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected spawn %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFromASCII(t *testing.T) {
	m := &formats.ASCIIMap{Name: "tiny", Empty: '.', Player: '@', Rows: []string{"###", "#@#", "###"}}
	g, err := FromASCII(m)
	if err != nil {
		t.Fatalf("FromASCII failed: %v", err)
	}
	if g.Name() != "tiny" || g.EmptySymbol() != '.' || g.PlayerSymbol() != '@' {
		t.Errorf("unexpected grid metadata: %q %q %q", g.Name(), g.EmptySymbol(), g.PlayerSymbol())
	}

	m.Rows = []string{"###", "#@", "###"}
	if _, err := FromASCII(m); !errors.Is(err, ErrRaggedRows) {
		t.Errorf("expected ErrRaggedRows, got %v", err)
	}
}

func TestCountBySymbol(t *testing.T) {
	counts := mustGrid(t, boxRows(4, 3)).CountBySymbol()
	if counts['x'] != 10 || counts[' '] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
