package display

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/ascii3d/internal/engine/input"
)

const eventBuffer = 64

// Terminal draws to a tcell screen.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	pumped sync.WaitGroup
	once   sync.Once
	closed bool
}

// OpenTerminal initializes the controlling terminal.
func OpenTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewTerminal(screen)
}

// NewTerminal initializes screen and starts reading its events.
func NewTerminal(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	t.pumped.Add(1)
	go t.pump()
	return t, nil
}

// pump forwards screen events until the screen is finalized.
func (t *Terminal) pump() {
	defer t.pumped.Done()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) PutCell(x, y int, glyph rune, fg, bg tcell.Color) {
	if t.closed {
		return
	}
	t.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
}

func (t *Terminal) Clear(fg, bg tcell.Color) {
	if t.closed {
		return
	}
	t.screen.SetStyle(tcell.StyleDefault.Foreground(fg).Background(bg))
	t.screen.Clear()
}

func (t *Terminal) Flush() error {
	if t.closed {
		return ErrClosed
	}
	t.screen.Show()
	return nil
}

// PollInput skips events the viewer has no use for.
func (t *Terminal) PollInput() (input.Event, bool) {
	for {
		select {
		case ev := <-t.events:
			if out, ok := input.FromTcell(ev); ok {
				return out, true
			}
		default:
			return input.Event{}, false
		}
	}
}

// Close restores the terminal. Safe to call more than once.
func (t *Terminal) Close() error {
	t.once.Do(func() {
		t.closed = true
		close(t.done)
		t.screen.Fini()
		t.pumped.Wait()
	})
	return nil
}
