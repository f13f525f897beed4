//go:build darwin

package clipboard

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
//
// NSInteger clippy_changeCount() {
//     return [[NSPasteboard generalPasteboard] changeCount];
// }
import "C"

// New returns the macOS clipboard backend.
func New() (Accessor, error) {
	b, err := newSystemBackend()
	if err != nil {
		return nil, err
	}
	b.name = "macOS NSPasteboard"
	return b, nil
}

func changeCount() (uint64, bool) {
	return uint64(C.clippy_changeCount()), true
}
