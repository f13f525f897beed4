//go:build darwin

package bridge

import "go.klb.dev/clippy/internal/input"

// Synthesized events need the Accessibility permission on macOS; without it
// they are dropped silently and capture simply comes back empty.
func detectPlatform() Platform {
	return Platform{
		Name:       "darwin",
		Clipboard:  openClipboard(),
		Input:      input.NewRobotgo(),
		CopyChord:  cmdC,
		PasteChord: cmdV,
	}
}
