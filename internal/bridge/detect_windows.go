//go:build windows

package bridge

import "go.klb.dev/clippy/internal/input"

func detectPlatform() Platform {
	return Platform{
		Name:       "windows",
		Clipboard:  openClipboard(),
		Input:      input.NewSendInput(),
		CopyChord:  ctrlC,
		PasteChord: ctrlV,
	}
}
