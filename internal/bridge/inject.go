package bridge

import (
	"fmt"
	"log/slog"
)

// Inject delivers text into the focused application.
//
// Typing never reads or writes the clipboard. Pasting snapshots the
// clipboard, writes text, pastes, then writes the snapshot back; if that
// final write fails the user's previous clipboard text is lost, which is
// logged but not returned.
//
// Inject fails with *UnsupportedPlatformError when no method is available and
// with *input.InjectionError when the OS rejects the synthesized events. It
// does not retry.
func (b *Bridge) Inject(text string) error {
	in := b.platform.Input
	if in == nil {
		return &UnsupportedPlatformError{Platform: b.platform.Name, Reason: "no keyboard injector available"}
	}

	typing := b.mode == ModeType || (b.mode == ModeAuto && in.CanType())
	if typing {
		slog.Debug("inject: typing", "injector", in.Name(), "runes", len([]rune(text)))
		if err := in.TypeUnicode(text); err != nil {
			return fmt.Errorf("type text: %w", err)
		}
		return nil
	}

	if b.platform.Clipboard == nil {
		return &UnsupportedPlatformError{Platform: b.platform.Name, Reason: "no clipboard available for pasting"}
	}
	return b.paste(text)
}

func (b *Bridge) paste(text string) error {
	acc := b.platform.Clipboard

	original, err := acc.Read()
	if err != nil {
		slog.Warn("inject: clipboard snapshot failed, restoring empty text afterwards", "err", err)
		original = ""
	}

	if err := acc.Write(text); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	// Some backends acknowledge the write before the OS has the new owner.
	b.sleep(b.timing.SettleDelay)

	pasteErr := b.platform.Input.SendChord(b.platform.PasteChord)
	if pasteErr == nil {
		// Let the target read the clipboard before it is overwritten.
		b.sleep(b.timing.RestoreDelay)
	}

	if err := acc.Write(original); err != nil {
		slog.Warn("inject: clipboard restore failed, previous contents lost", "err", err)
	}

	if pasteErr != nil {
		return fmt.Errorf("paste chord %s: %w", b.platform.PasteChord, pasteErr)
	}
	slog.Debug("inject: pasted", "injector", b.platform.Input.Name(), "clipboard", acc.Name())
	return nil
}
