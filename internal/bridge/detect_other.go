//go:build !windows && !darwin && !linux

package bridge

func detectPlatform() Platform {
	return Platform{Name: "unsupported", Clipboard: openClipboard()}
}
