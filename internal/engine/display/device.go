// Package display provides the character-cell output device the viewer
// draws into, with a tcell terminal backend and an in-memory recorder.
package display

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/ascii3d/internal/engine/input"
)

// ErrClosed is returned when drawing to a device after Close.
var ErrClosed = errors.New("display: device closed")

// Device is a character grid with colours and a non-blocking input queue.
type Device interface {
	// Size returns the grid size in cells.
	Size() (width, height int)
	// PutCell writes one glyph. Cells outside the grid are ignored.
	PutCell(x, y int, glyph rune, fg, bg tcell.Color)
	// Clear fills the grid with blanks in the given colours.
	Clear(fg, bg tcell.Color)
	// Flush presents everything drawn since the last flush.
	Flush() error
	// PollInput returns the next pending event without blocking.
	PollInput() (input.Event, bool)
	Close() error
}

// Cell is one drawn character.
type Cell struct {
	Glyph rune
	FG    tcell.Color
	BG    tcell.Color
}

// PutString writes s left to right starting at (x, y).
func PutString(d Device, x, y int, s string, fg, bg tcell.Color) {
	for _, r := range s {
		d.PutCell(x, y, r, fg, bg)
		x++
	}
}
