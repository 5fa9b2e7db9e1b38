package display

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/ascii3d/internal/engine/input"
)

// Recorder is an in-memory Device. It is used by tests and by maptool to
// render frames without a terminal.
type Recorder struct {
	width, height int
	cells         []Cell
	queue         []input.Event
	flushes       int
	closed        bool

	// OnFlush runs after every successful Flush, before it returns.
	OnFlush func(r *Recorder)
	// FlushErr, when set, is returned by Flush.
	FlushErr error
}

// NewRecorder returns a blank recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	r := &Recorder{}
	r.resize(width, height)
	return r
}

func (r *Recorder) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.width, r.height = width, height
	r.cells = make([]Cell, width*height)
	r.Clear(tcell.ColorDefault, tcell.ColorDefault)
}

// Resize changes the grid size, discarding its contents, and queues a
// resize event.
func (r *Recorder) Resize(width, height int) {
	r.resize(width, height)
	r.queue = append(r.queue, input.ResizeEvent(r.width, r.height))
}

// Feed queues input events returned by later PollInput calls.
func (r *Recorder) Feed(events ...input.Event) {
	r.queue = append(r.queue, events...)
}

// Pending returns the number of queued events.
func (r *Recorder) Pending() int {
	return len(r.queue)
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

func (r *Recorder) PutCell(x, y int, glyph rune, fg, bg tcell.Color) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.cells[y*r.width+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
}

func (r *Recorder) Clear(fg, bg tcell.Color) {
	for i := range r.cells {
		r.cells[i] = Cell{Glyph: ' ', FG: fg, BG: bg}
	}
}

func (r *Recorder) Flush() error {
	if r.closed {
		return ErrClosed
	}
	if r.FlushErr != nil {
		return r.FlushErr
	}
	r.flushes++
	if r.OnFlush != nil {
		r.OnFlush(r)
	}
	return nil
}

func (r *Recorder) PollInput() (input.Event, bool) {
	if len(r.queue) == 0 {
		return input.Event{}, false
	}
	ev := r.queue[0]
	r.queue = r.queue[1:]
	return ev, true
}

func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	return r.closed
}

// Flushes returns the number of successful flushes.
func (r *Recorder) Flushes() int {
	return r.flushes
}

// CellAt returns the cell at (x, y); the zero Cell outside the grid.
func (r *Recorder) CellAt(x, y int) Cell {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return Cell{}
	}
	return r.cells[y*r.width+x]
}

// Row returns the glyphs of row y.
func (r *Recorder) Row(y int) string {
	if y < 0 || y >= r.height {
		return ""
	}
	var b strings.Builder
	for _, c := range r.cells[y*r.width : (y+1)*r.width] {
		b.WriteRune(c.Glyph)
	}
	return b.String()
}

// Text returns every row, newline separated.
func (r *Recorder) Text() string {
	rows := make([]string, r.height)
	for y := range rows {
		rows[y] = r.Row(y)
	}
	return strings.Join(rows, "\n")
}
