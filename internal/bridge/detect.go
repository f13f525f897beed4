package bridge

import (
	"log/slog"

	"go.klb.dev/clippy/internal/clipboard"
	"go.klb.dev/clippy/internal/input"
)

var (
	ctrlC = input.Chord{Modifiers: []input.Key{input.KeyCtrl}, Key: input.KeyC}
	ctrlV = input.Chord{Modifiers: []input.Key{input.KeyCtrl}, Key: input.KeyV}
	cmdC  = input.Chord{Modifiers: []input.Key{input.KeyCmd}, Key: input.KeyC}
	cmdV  = input.Chord{Modifiers: []input.Key{input.KeyCmd}, Key: input.KeyV}
)

// Detect resolves the host's capability set. It is called once per process;
// the platform-specific part lives in detectPlatform.
func Detect() Platform {
	p := detectPlatform()
	attrs := []any{"platform", p.Name}
	if p.Clipboard != nil {
		attrs = append(attrs, "clipboard", p.Clipboard.Name())
	}
	if p.Input != nil {
		attrs = append(attrs, "input", p.Input.Name(), "direct_typing", p.Input.CanType())
	}
	slog.Debug("platform detected", attrs...)
	return p
}

// openClipboard returns the platform clipboard, or nil with a warning.
func openClipboard() clipboard.Accessor {
	acc, err := clipboard.New()
	if err != nil {
		slog.Warn("clipboard unavailable", "err", err)
		return nil
	}
	return acc
}
