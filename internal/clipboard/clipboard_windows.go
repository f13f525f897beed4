//go:build windows

package clipboard

import "golang.org/x/sys/windows"

var procGetClipboardSequenceNumber = windows.NewLazySystemDLL("user32.dll").NewProc("GetClipboardSequenceNumber")

// New returns the Windows clipboard backend.
func New() (Accessor, error) {
	b, err := newSystemBackend()
	if err != nil {
		return nil, err
	}
	b.name = "Windows Clipboard"
	return b, nil
}

// changeCount returns GetClipboardSequenceNumber. Zero means the caller
// lacks access to the window station, so the counter is unusable.
func changeCount() (uint64, bool) {
	if err := procGetClipboardSequenceNumber.Find(); err != nil {
		return 0, false
	}
	r, _, _ := procGetClipboardSequenceNumber.Call()
	if r == 0 {
		return 0, false
	}
	return uint64(r), true
}
