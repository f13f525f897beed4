// Package input synthesizes keyboard events into the OS input queue. Events
// go to whichever window holds input focus; nothing here selects or activates
// a window.
package input

import (
	"fmt"
	"strings"
)

// Key names follow robotgo's key vocabulary ("ctrl", "cmd", "c", "v", ...).
type Key string

const (
	KeyCtrl Key = "ctrl"
	KeyCmd  Key = "cmd"
	KeyC    Key = "c"
	KeyV    Key = "v"
)

// Chord is a key pressed while holding zero or more modifiers.
type Chord struct {
	Modifiers []Key
	Key       Key
}

func (c Chord) String() string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(c.Key))
	return strings.Join(parts, "+")
}

// Injector is the event-synthesis primitive used by the capture and
// injection protocols.
type Injector interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// SendChord presses each modifier, presses key, releases key, then
	// releases the modifiers in reverse order, each as a discrete event.
	SendChord(c Chord) error

	// TypeUnicode emits a key-down and key-up pair carrying the code point of
	// each character of text, with no modifier state.
	TypeUnicode(text string) error

	// CanType reports whether TypeUnicode is supported by this backend.
	CanType() bool
}

// InjectionError reports event submission rejected by the OS.
type InjectionError struct {
	Submitted int
	Accepted  int
	Err       error
}

func (e *InjectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input injection: %d of %d events accepted: %v", e.Accepted, e.Submitted, e.Err)
	}
	return fmt.Sprintf("input injection: %d of %d events accepted", e.Accepted, e.Submitted)
}

func (e *InjectionError) Unwrap() error { return e.Err }

// chordEvents expands c into the ordered down/up sequence SendChord must emit.
func chordEvents(c Chord) []event {
	evs := make([]event, 0, 2*len(c.Modifiers)+2)
	for _, m := range c.Modifiers {
		evs = append(evs, event{key: m, down: true})
	}
	evs = append(evs, event{key: c.Key, down: true}, event{key: c.Key, down: false})
	for i := len(c.Modifiers) - 1; i >= 0; i-- {
		evs = append(evs, event{key: c.Modifiers[i], down: false})
	}
	return evs
}

type event struct {
	key  Key
	down bool
}
