//go:build !darwin && !windows && !linux

package clipboard

import "errors"

// New reports that no clipboard is available on this platform.
func New() (Accessor, error) {
	return nil, &AccessError{
		Op:      "init",
		Backend: "headless",
		Err:     errors.New("clipboard not supported on this platform"),
	}
}
