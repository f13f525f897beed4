//go:build darwin || windows || linux

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

const systemName = "system clipboard"

var (
	initOnce sync.Once
	initErr  error
)

// initSystem calls clipboard.Init exactly once per process. It is called
// lazily so that commands which never touch the clipboard (fetch --print,
// clips) don't fail on headless hosts.
func initSystem() error {
	initOnce.Do(func() { initErr = clipboard.Init() })
	return initErr
}

// systemBackend talks to the OS clipboard in-process via golang.design.
type systemBackend struct {
	name string
}

func newSystemBackend() (*systemBackend, error) {
	if err := initSystem(); err != nil {
		return nil, &AccessError{Op: "init", Backend: systemName, Err: err}
	}
	return &systemBackend{name: systemName}, nil
}

func (b *systemBackend) Name() string { return b.name }

func (b *systemBackend) Read() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

// Write blocks until golang.design has handed the data to the OS, so the
// payload is visible to other applications when Write returns.
func (b *systemBackend) Write(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (b *systemBackend) Sequence() (uint64, bool) { return changeCount() }
