// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionTogglePause
	ActionRestart
	ActionToggleBones
	ActionFaster
	ActionSlower
	ActionScreenshot
)

// DefaultBindings maps keys to actions.
var DefaultBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE:   ActionQuit,
	sdl.SCANCODE_SPACE:    ActionTogglePause,
	sdl.SCANCODE_R:        ActionRestart,
	sdl.SCANCODE_B:        ActionToggleBones,
	sdl.SCANCODE_EQUALS:   ActionFaster,
	sdl.SCANCODE_KP_PLUS:  ActionFaster,
	sdl.SCANCODE_MINUS:    ActionSlower,
	sdl.SCANCODE_KP_MINUS: ActionSlower,
	sdl.SCANCODE_F12:      ActionScreenshot,
}

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventAction
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Action Action
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	Bindings map[sdl.Scancode]Action
	events   []Event
}

// New creates a new input handler with DefaultBindings.
func New() *Input {
	return &Input{
		Bindings: DefaultBindings,
		events:   make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			action, ok := i.Bindings[e.Keysym.Scancode]
			if !ok {
				continue
			}
			i.events = append(i.events, Event{Type: EventAction, Action: action})
			if action == ActionQuit {
				quit = true
			}
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
