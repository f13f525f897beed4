// Package bridge moves text between the foreground application and clippy
// without leaving the user's clipboard changed.
//
// Capture obtains the highlighted text, preferring the primary selection and
// otherwise simulating a copy chord and watching the clipboard. Inject
// delivers text by typing it as Unicode key events where the platform
// supports that, and otherwise by pasting through the clipboard. Either way
// the previous clipboard text is written back afterwards on a best-effort
// basis: the OS offers no lock, so a concurrent writer can still win.
package bridge

import (
	"fmt"
	"strings"
	"time"

	"go.klb.dev/clippy/internal/clipboard"
	"go.klb.dev/clippy/internal/input"
)

// InjectMode selects how Inject delivers text.
type InjectMode string

const (
	ModeAuto  InjectMode = "auto"  // type when the injector supports it natively, else paste
	ModeType  InjectMode = "type"  // always type; fails if there is no injector
	ModePaste InjectMode = "paste" // always paste through the clipboard
)

// ParseInjectMode converts a string to an InjectMode.
func ParseInjectMode(s string) (InjectMode, error) {
	switch m := InjectMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeType, ModePaste:
		return m, nil
	default:
		return "", fmt.Errorf("unknown inject mode %q (want auto, type or paste)", s)
	}
}

// Platform is the capability set of the host, resolved once at startup.
// A nil Clipboard or Input means the capability is unavailable.
type Platform struct {
	Name       string
	Clipboard  clipboard.Accessor
	Input      input.Injector
	CopyChord  input.Chord
	PasteChord input.Chord
}

// Timing holds the delays used by the protocols. The paste delays are
// empirical floors, not guarantees.
type Timing struct {
	CaptureTimeout time.Duration // how long to wait for the copy to land
	PollInterval   time.Duration // clipboard sampling period while waiting
	SettleDelay    time.Duration // after writing the payload, before pasting
	RestoreDelay   time.Duration // after pasting, before restoring
}

// DefaultTiming returns the delays that work for common desktop apps.
func DefaultTiming() Timing {
	return Timing{
		CaptureTimeout: 500 * time.Millisecond,
		PollInterval:   10 * time.Millisecond,
		SettleDelay:    30 * time.Millisecond,
		RestoreDelay:   50 * time.Millisecond,
	}
}

// UnsupportedPlatformError reports that no injection method is available.
type UnsupportedPlatformError struct {
	Platform string
	Reason   string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("no injection method on %s: %s", e.Platform, e.Reason)
}

// Bridge runs the capture and injection protocols against a Platform.
type Bridge struct {
	platform Platform
	timing   Timing
	mode     InjectMode

	sleep func(time.Duration)
	now   func() time.Time
}

// New returns a Bridge. Zero Timing fields take their defaults.
func New(p Platform, t Timing, mode InjectMode) *Bridge {
	def := DefaultTiming()
	if t.CaptureTimeout <= 0 {
		t.CaptureTimeout = def.CaptureTimeout
	}
	if t.PollInterval <= 0 {
		t.PollInterval = def.PollInterval
	}
	if t.SettleDelay <= 0 {
		t.SettleDelay = def.SettleDelay
	}
	if t.RestoreDelay <= 0 {
		t.RestoreDelay = def.RestoreDelay
	}
	if mode == "" {
		mode = ModeAuto
	}
	return &Bridge{
		platform: p,
		timing:   t,
		mode:     mode,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Platform returns the capability set the bridge was built with.
func (b *Bridge) Platform() Platform { return b.platform }
