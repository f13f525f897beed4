package main

import "fmt"

// Exit codes. fetch keeps the codes of the original tool so that hotkey
// scripts can tell the failures apart.
const (
	exitFailure   = 1 // config, transport or HTTP failure
	exitNoClips   = 2 // fetch: relay has no clips
	exitNoContent = 3 // fetch: chosen clip has no usable content payload
	exitInject    = 4 // fetch: text could not be delivered to the focused app
	exitNoCapture = 5 // send: nothing was selected
)

// exitError carries a specific exit code out of a cobra RunE. A nil err
// exits quietly.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func fail(code int, err error) error { return &exitError{code: code, err: err} }
