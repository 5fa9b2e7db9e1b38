package render

import (
	"errors"
	stdmath "math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/ascii3d/internal/config"
	"github.com/Faultbox/ascii3d/internal/engine/display"
	"github.com/Faultbox/ascii3d/internal/engine/raycast"
	"github.com/Faultbox/ascii3d/internal/world"
	"github.com/Faultbox/ascii3d/pkg/math"
)

func defaultPalette(t *testing.T) *Palette {
	t.Helper()
	p, err := NewPalette(config.Default().Palette)
	if err != nil {
		t.Fatalf("default palette: %v", err)
	}
	return p
}

func newRenderer(t *testing.T, w, h int) (*Renderer, *display.Recorder) {
	t.Helper()
	rec := display.NewRecorder(w, h)
	return New(rec, defaultPalette(t), DefaultOptions()), rec
}

func TestPaletteLookup(t *testing.T) {
	p := defaultPalette(t)

	tests := []struct {
		sym  world.Symbol
		side raycast.Side
		want tcell.Color
	}{
		{'x', raycast.SideX, tcell.ColorGreen},
		{'x', raycast.SideY, tcell.ColorDarkGreen},
		{'y', raycast.SideX, tcell.ColorBlue},
		{'y', raycast.SideY, tcell.ColorDarkBlue},
		{'z', raycast.SideX, tcell.ColorYellow},
		{'z', raycast.SideY, tcell.ColorOlive},
		{'#', raycast.SideX, tcell.ColorWhite},
		{'#', raycast.SideY, tcell.ColorGray},
	}

	for _, tt := range tests {
		t.Run(string(rune(tt.sym))+"/"+tt.side.String(), func(t *testing.T) {
			got := p.WallColor(raycast.Hit{Symbol: tt.sym, Side: tt.side})
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	if c, err := ParseColor("DarkRed"); err != nil || c != tcell.ColorDarkRed {
		t.Errorf("DarkRed: got %v, %v", c, err)
	}
	if c, err := ParseColor("#ff0000"); err != nil || c != tcell.NewHexColor(0xff0000) {
		t.Errorf("#ff0000: got %v, %v", c, err)
	}
	if c, err := ParseColor(""); err != nil || c != tcell.ColorDefault {
		t.Errorf("empty: got %v, %v", c, err)
	}
	if _, err := ParseColor("notacolor"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("expected ErrUnknownColor, got %v", err)
	}
}

func TestNewPaletteErrors(t *testing.T) {
	cfg := config.Default().Palette
	cfg.Walls["#"] = config.WallColors{Light: "sparkly", Dark: "gray"}
	cfg.Floor = "mud"

	_, err := NewPalette(cfg)
	if !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("expected ErrUnknownColor, got %v", err)
	}
}

func TestViewSize(t *testing.T) {
	tests := []struct {
		w, h, margin int
		wantW, wantH int
	}{
		{80, 24, 10, 70, 14},
		{80, 24, 0, 80, 24},
		{5, 5, 10, 0, 0},
	}
	for _, tt := range tests {
		rec := display.NewRecorder(tt.w, tt.h)
		opts := DefaultOptions()
		opts.Margin = tt.margin
		r := New(rec, defaultPalette(t), opts)
		if w, h := r.ViewSize(); w != tt.wantW || h != tt.wantH {
			t.Errorf("%dx%d margin %d: got %dx%d, want %dx%d", tt.w, tt.h, tt.margin, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestDrawColumn(t *testing.T) {
	// 30x30 view.
	r, rec := newRenderer(t, 40, 40)
	p := r.Palette()

	r.DrawColumn(3, raycast.Strip{LineHeight: 8, DrawStart: 5, DrawEnd: 12}, tcell.ColorGreen)

	for y := 0; y < 30; y++ {
		c := rec.CellAt(3, y)
		var wantGlyph rune
		var wantFG tcell.Color
		switch {
		case y < 5:
			wantGlyph, wantFG = '▒', p.CeilingFar
		case y <= 12:
			wantGlyph, wantFG = '█', tcell.ColorGreen
		case y < 20:
			wantGlyph, wantFG = '▒', p.Floor
		default:
			wantGlyph, wantFG = '▒', p.FloorFar
		}
		if c.Glyph != wantGlyph || c.FG != wantFG {
			t.Errorf("row %d: got %q %v, want %q %v", y, c.Glyph, c.FG, wantGlyph, wantFG)
		}
	}

	// Nothing is drawn in the margin.
	if c := rec.CellAt(3, 30); c.Glyph != ' ' {
		t.Errorf("margin row: got %q", c.Glyph)
	}
}

func TestDrawColumnNearCeiling(t *testing.T) {
	r, rec := newRenderer(t, 40, 40)
	p := r.Palette()

	r.DrawColumn(0, raycast.Strip{DrawStart: 14, DrawEnd: 15}, tcell.ColorBlue)

	if c := rec.CellAt(0, 10); c.FG != p.CeilingFar {
		t.Errorf("row 10: got %v, want far ceiling", c.FG)
	}
	if c := rec.CellAt(0, 11); c.FG != p.Ceiling {
		t.Errorf("row 11: got %v, want near ceiling", c.FG)
	}
}

func TestDrawColumnInvalidStripFillsColumn(t *testing.T) {
	r, rec := newRenderer(t, 20, 20)

	r.DrawColumn(2, raycast.Strip{DrawStart: 7, DrawEnd: 3}, tcell.ColorYellow)

	for y := 0; y < 10; y++ {
		if c := rec.CellAt(2, y); c.Glyph != '█' || c.FG != tcell.ColorYellow {
			t.Errorf("row %d: got %q %v", y, c.Glyph, c.FG)
		}
	}
}

func TestDrawHit(t *testing.T) {
	r, rec := newRenderer(t, 30, 30) // 20x20 view

	// Distance 2 in a 20 row view: line height 10, rows 5..15.
	r.DrawHit(4, raycast.Hit{Symbol: 'y', Side: raycast.SideY, Distance: 2})

	if c := rec.CellAt(4, 5); c.Glyph != '█' || c.FG != tcell.ColorDarkBlue {
		t.Errorf("row 5: got %q %v", c.Glyph, c.FG)
	}
	if c := rec.CellAt(4, 15); c.Glyph != '█' {
		t.Errorf("row 15: got %q", c.Glyph)
	}
	if c := rec.CellAt(4, 4); c.Glyph != '▒' {
		t.Errorf("row 4: got %q", c.Glyph)
	}
	if c := rec.CellAt(4, 16); c.Glyph != '▒' {
		t.Errorf("row 16: got %q", c.Glyph)
	}
}

func TestFormatFPS(t *testing.T) {
	tests := []struct {
		fps  float64
		want string
	}{
		{59.9, "59 FPS"},
		{1000, "1000 FPS"},
		{0, "0 FPS"},
		{stdmath.Inf(1), "-- FPS"},
		{stdmath.NaN(), "-- FPS"},
	}
	for _, tt := range tests {
		if got := FormatFPS(tt.fps); got != tt.want {
			t.Errorf("FormatFPS(%v) = %q, want %q", tt.fps, got, tt.want)
		}
	}
}

func TestOverlayRows(t *testing.T) {
	r, rec := newRenderer(t, 80, 24) // 70x14 view

	r.DrawFPS(42.7)
	r.DrawDebug(Diagnostics{Input: time.Millisecond, Draw: 2 * time.Millisecond, Cast: 3 * time.Millisecond}.String())

	if got := rec.Row(16)[:6]; got != "42 FPS" {
		t.Errorf("fps row: got %q", got)
	}
	want := "InputTime: 1 ms, DrawTime: 2 ms, ForLoopTime: 3 ms"
	if got := rec.Row(17)[:len(want)]; got != want {
		t.Errorf("debug row: got %q", got)
	}
}

func TestDrawMinimap(t *testing.T) {
	r, rec := newRenderer(t, 30, 20) // 20x10 view
	grid, err := world.New([]string{
		"#####",
		"#p  #",
		"#   #",
		"#  x#",
		"#####",
	}, ' ', 'p')
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	r.DrawMinimap(grid, math.Vec2{X: 2.5, Y: 2.5})

	want := []string{
		"#####",
		"#   #",
		"# P #",
		"#  x#",
		"#####",
	}
	for i, row := range want {
		got := string([]rune(rec.Row(5 + i))[15:20])
		if got != row {
			t.Errorf("minimap row %d: got %q, want %q", i, got, row)
		}
	}
}

func TestClearAndFlush(t *testing.T) {
	r, rec := newRenderer(t, 12, 12)
	rec.PutCell(0, 0, 'x', tcell.ColorRed, tcell.ColorRed)

	r.Clear()
	if c := rec.CellAt(0, 0); c.Glyph != ' ' || c.BG != tcell.ColorBlack {
		t.Errorf("after clear: got %+v", c)
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if rec.Flushes() != 1 {
		t.Errorf("expected 1 flush, got %d", rec.Flushes())
	}
}
