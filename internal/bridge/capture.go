package bridge

import (
	"log/slog"

	"go.klb.dev/clippy/internal/clipboard"
)

// Capture returns the text currently highlighted in the foreground
// application, or "" if nothing was selected or the application never
// reacted. It never fails: every error degrades to an empty capture.
//
// When the clipboard had to be used, its previous text is written back
// exactly once, whatever happened in between.
func (b *Bridge) Capture() string {
	acc := b.platform.Clipboard
	if acc == nil {
		slog.Debug("capture: no clipboard on this platform")
		return ""
	}

	original, err := acc.Read()
	if err != nil {
		slog.Debug("capture: clipboard snapshot failed, assuming empty", "err", err)
		original = ""
	}
	seq, seqOK := sequence(acc)

	if sel, ok := acc.(clipboard.SelectionReader); ok {
		text, err := sel.ReadSelection()
		switch {
		case err != nil:
			slog.Debug("capture: primary selection unavailable", "err", err)
		case text != "":
			slog.Debug("capture: using primary selection", "bytes", len(text))
			return text
		}
	}

	if b.platform.Input == nil {
		slog.Debug("capture: no input injector, cannot simulate copy")
		return ""
	}

	var captured string
	if err := b.platform.Input.SendChord(b.platform.CopyChord); err != nil {
		slog.Debug("capture: copy chord failed", "chord", b.platform.CopyChord, "err", err)
	} else {
		captured = b.waitForCopy(acc, original, seq, seqOK)
	}

	if err := acc.Write(original); err != nil {
		slog.Warn("capture: clipboard restore failed", "err", err)
	}
	return captured
}

// waitForCopy samples the clipboard until it holds non-empty text that
// differs from original, or the OS reports a new owner, or the capture
// timeout elapses.
func (b *Bridge) waitForCopy(acc clipboard.Accessor, original string, seq uint64, seqOK bool) string {
	deadline := b.now().Add(b.timing.CaptureTimeout)
	for {
		b.sleep(b.timing.PollInterval)

		cur, err := acc.Read()
		if err == nil && cur != "" {
			if cur != original {
				return cur
			}
			if seqOK {
				if s, ok := sequence(acc); ok && s != seq {
					// Same text re-copied: the owner changed, so it is a real copy.
					return cur
				}
			}
		}

		if !b.now().Before(deadline) {
			slog.Debug("capture: clipboard did not change before timeout", "timeout", b.timing.CaptureTimeout)
			return ""
		}
	}
}

func sequence(acc clipboard.Accessor) (uint64, bool) {
	if s, ok := acc.(clipboard.Sequencer); ok {
		return s.Sequence()
	}
	return 0, false
}
