//go:build linux

package bridge

import (
	"os"
	"strings"

	"go.klb.dev/clippy/internal/input"
)

// detectPlatform distinguishes X11 from Wayland at runtime. XTest events are
// not delivered to Wayland clients, so there is no injector there; capture
// still works through the primary selection.
func detectPlatform() Platform {
	p := Platform{
		Name:       "linux",
		Clipboard:  openClipboard(),
		CopyChord:  ctrlC,
		PasteChord: ctrlV,
	}
	switch sessionType() {
	case "wayland":
		p.Name = "linux/wayland"
	case "x11":
		p.Name = "linux/x11"
		p.Input = input.NewRobotgo()
	default:
		p.Name = "linux/headless"
	}
	return p
}

func sessionType() string {
	switch strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}
	if os.Getenv("DISPLAY") != "" {
		return "x11"
	}
	return ""
}
