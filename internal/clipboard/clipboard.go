// Package clipboard provides text access to the OS-global clipboard across
// platforms. Build constraints select the backend New returns:
//
//	clipboard_darwin.go   golang.design/x/clipboard + NSPasteboard changeCount
//	clipboard_windows.go  golang.design/x/clipboard + GetClipboardSequenceNumber
//	clipboard_linux.go    wl-clipboard, xclip or xsel + primary selection; atotto fallback
//	clipboard_other.go    headless stub
//
// The clipboard is shared mutable state owned by the OS. Nothing here locks
// it; callers that need to put it back the way they found it must snapshot
// and restore explicitly.
package clipboard

import "fmt"

// Accessor reads and writes the text payload of the clipboard.
type Accessor interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard text. An empty or non-text
	// clipboard yields "", nil.
	Read() (string, error)

	// Write replaces the clipboard contents with text.
	Write(text string) error
}

// Sequencer is implemented by accessors whose platform exposes a counter
// that the OS bumps every time clipboard ownership changes. ok is false when
// the counter is unavailable at runtime.
type Sequencer interface {
	Sequence() (seq uint64, ok bool)
}

// SelectionReader is implemented by accessors that can read the primary
// selection, a buffer distinct from the clipboard that is updated merely by
// highlighting text.
type SelectionReader interface {
	ReadSelection() (string, error)
}

// AccessError reports a clipboard that could not be opened, read or written.
type AccessError struct {
	Op      string // "read", "write", "init" or "selection"
	Backend string
	Err     error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("clipboard %s (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }
