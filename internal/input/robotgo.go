//go:build darwin || linux

package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// robotgoInjector synthesizes events through robotgo (XTest on X11,
// CGEvent on macOS).
type robotgoInjector struct{}

// NewRobotgo returns an Injector backed by robotgo.
func NewRobotgo() Injector { return &robotgoInjector{} }

func (r *robotgoInjector) Name() string { return "robotgo" }

func (r *robotgoInjector) SendChord(c Chord) error {
	evs := chordEvents(c)
	for i, ev := range evs {
		state := "up"
		if ev.down {
			state = "down"
		}
		if err := robotgo.KeyToggle(string(ev.key), state); err != nil {
			// Don't leave a modifier latched if a later event fails.
			releaseModifiers(c.Modifiers)
			return &InjectionError{
				Submitted: len(evs),
				Accepted:  i,
				Err:       fmt.Errorf("%s %s: %w", ev.key, state, err),
			}
		}
	}
	return nil
}

// TypeUnicode types text one code point at a time. robotgo routes code
// points through the active keyboard layout, so characters the layout lacks
// may be dropped; CanType reports false so auto mode prefers pasting.
//
// robotgo reports nothing back for typed characters, so this path cannot
// detect a rejected or dropped event and never returns an InjectionError.
func (r *robotgoInjector) TypeUnicode(text string) error {
	for _, ch := range text {
		robotgo.UnicodeType(uint32(ch))
	}
	return nil
}

func (r *robotgoInjector) CanType() bool { return false }

func releaseModifiers(mods []Key) {
	for i := len(mods) - 1; i >= 0; i-- {
		_ = robotgo.KeyToggle(string(mods[i]), "up")
	}
}
