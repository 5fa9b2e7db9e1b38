// Package render draws ray-cast frames and overlays onto a display device.
package render

import (
	"fmt"
	stdmath "math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/ascii3d/internal/engine/display"
	"github.com/Faultbox/ascii3d/internal/engine/raycast"
	"github.com/Faultbox/ascii3d/internal/world"
	"github.com/Faultbox/ascii3d/pkg/math"
)

// shadeBand is the number of rows at the top and bottom of the view drawn
// in the far ceiling and floor colours.
const shadeBand = 10

// PlayerGlyph marks the player on the minimap.
const PlayerGlyph = 'P'

// Options holds drawing settings.
type Options struct {
	Margin     int  // Cells reserved right and below the view
	WallGlyph  rune
	ShadeGlyph rune
}

// DefaultOptions returns the default drawing settings.
func DefaultOptions() Options {
	return Options{Margin: 10, WallGlyph: '█', ShadeGlyph: '▒'}
}

// Renderer draws columns and overlays. The view is the device area minus
// the margin; overlays are drawn in the margin below it.
type Renderer struct {
	dev     display.Device
	palette *Palette
	opts    Options
}

// New creates a renderer drawing to dev.
func New(dev display.Device, palette *Palette, opts Options) *Renderer {
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	return &Renderer{dev: dev, palette: palette, opts: opts}
}

// Palette returns the renderer's palette.
func (r *Renderer) Palette() *Palette {
	return r.palette
}

// ViewSize returns the size of the 3D view, never negative.
func (r *Renderer) ViewSize() (int, int) {
	w, h := r.dev.Size()
	return max(w-r.opts.Margin, 0), max(h-r.opts.Margin, 0)
}

// Clear blanks the device.
func (r *Renderer) Clear() {
	r.dev.Clear(r.palette.Text, r.palette.Background)
}

// Flush presents the frame.
func (r *Renderer) Flush() error {
	return r.dev.Flush()
}

// DrawColumn draws one screen column: shaded ceiling above the strip, the
// wall strip, shaded floor below. Strips outside the view fill the column.
func (r *Renderer) DrawColumn(x int, strip raycast.Strip, wall tcell.Color) {
	_, viewH := r.ViewSize()
	start, end := strip.DrawStart, strip.DrawEnd
	if start < 0 || end < 0 || end > viewH || start > end {
		start, end = 0, viewH
	}

	bg := r.palette.Background
	for y := 0; y < start; y++ {
		fg := r.palette.CeilingFar
		if y > shadeBand {
			fg = r.palette.Ceiling
		}
		r.dev.PutCell(x, y, r.opts.ShadeGlyph, fg, bg)
	}
	for y := end + 1; y < viewH; y++ {
		fg := r.palette.FloorFar
		if y < viewH-shadeBand {
			fg = r.palette.Floor
		}
		r.dev.PutCell(x, y, r.opts.ShadeGlyph, fg, bg)
	}
	for y := start; y <= end && y < viewH; y++ {
		r.dev.PutCell(x, y, r.opts.WallGlyph, wall, bg)
	}
}

// DrawHit projects a hit and draws its column.
func (r *Renderer) DrawHit(x int, hit raycast.Hit) {
	_, viewH := r.ViewSize()
	r.DrawColumn(x, raycast.Project(hit.Distance, viewH), r.palette.WallColor(hit))
}

// FormatFPS renders a frame rate the way the status line shows it.
func FormatFPS(fps float64) string {
	if stdmath.IsNaN(fps) || stdmath.IsInf(fps, 0) || fps < 0 {
		return "-- FPS"
	}
	return fmt.Sprintf("%d FPS", int64(stdmath.Trunc(fps)))
}

// DrawFPS writes the frame rate two rows below the view.
func (r *Renderer) DrawFPS(fps float64) {
	_, viewH := r.ViewSize()
	r.text(0, viewH+2, FormatFPS(fps))
}

// DrawDebug writes a diagnostics line three rows below the view.
func (r *Renderer) DrawDebug(line string) {
	_, viewH := r.ViewSize()
	r.text(0, viewH+3, line)
}

func (r *Renderer) text(x, y int, s string) {
	display.PutString(r.dev, x, y, s, r.palette.Text, r.palette.Background)
}

// DrawMinimap draws the grid in the bottom-right corner of the view with
// the player's cell marked. The spawn marker is drawn as floor.
func (r *Renderer) DrawMinimap(grid *world.Grid, player math.Vec2) {
	viewW, viewH := r.ViewSize()
	x0 := viewW - grid.Width()
	y0 := viewH - grid.Height()
	px, py := player.Floor()

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			glyph := PlayerGlyph
			if x != px || y != py {
				sym, _ := grid.CellAt(x, y)
				if sym == grid.PlayerSymbol() {
					sym = grid.EmptySymbol()
				}
				glyph = rune(sym)
			}
			r.dev.PutCell(x0+x, y0+y, glyph, r.palette.Text, r.palette.Background)
		}
	}
}

// Diagnostics holds the phase timings of the previous frame.
type Diagnostics struct {
	Input time.Duration
	Draw  time.Duration
	Cast  time.Duration
}

func (d Diagnostics) String() string {
	return fmt.Sprintf("InputTime: %d ms, DrawTime: %d ms, ForLoopTime: %d ms",
		d.Input.Milliseconds(), d.Draw.Milliseconds(), d.Cast.Milliseconds())
}
