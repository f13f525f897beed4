package bridge

import (
	"errors"
	"time"

	"go.klb.dev/clippy/internal/input"
)

// fakeClipboard is a deterministic clipboard that records every call.
type fakeClipboard struct {
	text     string
	seq      uint64
	reads    int
	writes   []string
	readErr  error
	writeErr error

	// pending is applied on the readsUntilCopy-th read after the copy chord,
	// modelling an application that reacts to the keystroke late.
	pending        *string
	readsUntilCopy int
}

func (c *fakeClipboard) Name() string { return "fake" }

func (c *fakeClipboard) Read() (string, error) {
	c.reads++
	if c.pending != nil {
		c.readsUntilCopy--
		if c.readsUntilCopy <= 0 {
			c.text = *c.pending
			c.seq++
			c.pending = nil
		}
	}
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.text, nil
}

func (c *fakeClipboard) Write(text string) error {
	c.writes = append(c.writes, text)
	if c.writeErr != nil {
		return c.writeErr
	}
	c.text = text
	c.seq++
	return nil
}

// sequencedClipboard adds an owner-change counter.
type sequencedClipboard struct{ *fakeClipboard }

func (c sequencedClipboard) Sequence() (uint64, bool) { return c.seq, true }

// selectionClipboard adds a primary selection.
type selectionClipboard struct {
	*fakeClipboard
	selection    string
	selectionErr error
}

func (c selectionClipboard) ReadSelection() (string, error) {
	return c.selection, c.selectionErr
}

// fakeInjector records chords and typed text. If target is set, the copy
// chord makes the "foreground application" put selected on the clipboard
// after delay reads.
type fakeInjector struct {
	canType  bool
	chords   []input.Chord
	typed    []string
	chordErr error
	typeErr  error

	target   *fakeClipboard
	selected string
	delay    int

	// pasted captures the clipboard text at the moment of the paste chord.
	pasted []string
}

func (f *fakeInjector) Name() string  { return "fake" }
func (f *fakeInjector) CanType() bool { return f.canType }

func (f *fakeInjector) SendChord(c input.Chord) error {
	f.chords = append(f.chords, c)
	if f.chordErr != nil {
		return f.chordErr
	}
	if f.target != nil {
		switch c.Key {
		case input.KeyC:
			if f.selected != "" {
				s := f.selected
				f.target.pending = &s
				f.target.readsUntilCopy = f.delay
			}
		case input.KeyV:
			f.pasted = append(f.pasted, f.target.text)
		}
	}
	return nil
}

func (f *fakeInjector) TypeUnicode(text string) error {
	f.typed = append(f.typed, text)
	return f.typeErr
}

var errBoom = errors.New("boom")

// fastTiming keeps tests quick while leaving room for a few poll rounds.
func fastTiming() Timing {
	return Timing{
		CaptureTimeout: 40 * time.Millisecond,
		PollInterval:   time.Millisecond,
		SettleDelay:    time.Millisecond,
		RestoreDelay:   time.Millisecond,
	}
}

func testPlatform(cb interface {
	Name() string
	Read() (string, error)
	Write(string) error
}, in *fakeInjector) Platform {
	p := Platform{Name: "test", Clipboard: cb, CopyChord: ctrlC, PasteChord: ctrlV}
	if in != nil {
		p.Input = in
	}
	return p
}
