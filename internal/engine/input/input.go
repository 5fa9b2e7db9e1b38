// Package input translates terminal key events into viewer actions.
package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// EventType classifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventQuit
)

// Action is what a key asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionRotateLeft
	ActionRotateRight
	ActionQuit
	ActionToggleMinimap
	ActionToggleDebug
)

var actionNames = [...]string{
	ActionNone:          "none",
	ActionForward:       "forward",
	ActionBackward:      "backward",
	ActionRotateLeft:    "rotate-left",
	ActionRotateRight:   "rotate-right",
	ActionQuit:          "quit",
	ActionToggleMinimap: "toggle-minimap",
	ActionToggleDebug:   "toggle-debug",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Action Action
	Width  int // EventResize only
	Height int
}

// KeyEvent returns a key event carrying the given action.
func KeyEvent(a Action) Event {
	return Event{Type: EventKey, Action: a}
}

// ResizeEvent returns a resize event.
func ResizeEvent(w, h int) Event {
	return Event{Type: EventResize, Width: w, Height: h}
}

// QuitEvent returns an event asking the viewer to stop.
func QuitEvent() Event {
	return Event{Type: EventQuit, Action: ActionQuit}
}

var keyActions = map[tcell.Key]Action{
	tcell.KeyUp:     ActionForward,
	tcell.KeyDown:   ActionBackward,
	tcell.KeyLeft:   ActionRotateLeft,
	tcell.KeyRight:  ActionRotateRight,
	tcell.KeyEscape: ActionQuit,
	tcell.KeyCtrlC:  ActionQuit,
	tcell.KeyCtrlQ:  ActionQuit,
}

var runeActions = map[rune]Action{
	'w': ActionForward,
	's': ActionBackward,
	'a': ActionRotateLeft,
	'd': ActionRotateRight,
	'q': ActionQuit,
	'm': ActionToggleMinimap,
	'i': ActionToggleDebug,
}

// ActionForKey maps a key, and its rune for tcell.KeyRune, to an action.
// Letters are matched case-insensitively.
func ActionForKey(key tcell.Key, ch rune) Action {
	if key == tcell.KeyRune {
		return runeActions[unicode.ToLower(ch)]
	}
	return keyActions[key]
}

// FromTcell converts a tcell event. The second result is false for events
// the viewer ignores.
func FromTcell(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		a := ActionForKey(e.Key(), e.Rune())
		if a == ActionNone {
			return Event{}, false
		}
		if a == ActionQuit {
			return QuitEvent(), true
		}
		return KeyEvent(a), true
	case *tcell.EventResize:
		w, h := e.Size()
		return ResizeEvent(w, h), true
	}
	return Event{}, false
}

// Source yields pending events without blocking.
type Source interface {
	PollInput() (Event, bool)
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update drains every pending event from src.
// Returns true if the viewer should quit.
func (i *Input) Update(src Source) bool {
	i.events = i.events[:0]

	quit := false
	for ev, ok := src.PollInput(); ok; ev, ok = src.PollInput() {
		i.events = append(i.events, ev)
		if ev.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// LastResize returns the most recent resize of the frame, if any.
func (i *Input) LastResize() (Event, bool) {
	for j := len(i.events) - 1; j >= 0; j-- {
		if i.events[j].Type == EventResize {
			return i.events[j], true
		}
	}
	return Event{}, false
}
