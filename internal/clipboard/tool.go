//go:build linux

package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// defaultToolTimeout bounds every external tool invocation, so a hung
// selection owner cannot stall the capture poll loop.
const defaultToolTimeout = time.Second

// toolSet is the argv of one clipboard utility for each operation.
type toolSet struct {
	name      string
	requires  []string
	read      []string
	write     []string
	selection []string
}

var (
	wlClipboard = toolSet{
		name:      "wl-clipboard",
		requires:  []string{"wl-copy", "wl-paste"},
		read:      []string{"wl-paste", "--no-newline"},
		write:     []string{"wl-copy"},
		selection: []string{"wl-paste", "--primary", "--no-newline"},
	}
	xclipTools = toolSet{
		name:      "xclip",
		requires:  []string{"xclip"},
		read:      []string{"xclip", "-selection", "clipboard", "-o"},
		write:     []string{"xclip", "-selection", "clipboard", "-in"},
		selection: []string{"xclip", "-selection", "primary", "-o"},
	}
	xselTools = toolSet{
		name:      "xsel",
		requires:  []string{"xsel"},
		read:      []string{"xsel", "--clipboard", "--output"},
		write:     []string{"xsel", "--clipboard", "--input"},
		selection: []string{"xsel", "--primary", "--output"},
	}
)

var errToolTimeout = errors.New("clipboard tool timed out")

// toolBackend runs the clipboard utilities found on PATH, each call bounded
// by timeout. The tools keep owning the clipboard after clippy exits.
type toolBackend struct {
	tools   toolSet
	timeout time.Duration
}

// detectTools picks the utility set to use: wl-clipboard under Wayland,
// then xclip, then xsel.
func detectTools() (toolSet, bool) {
	candidates := []toolSet{xclipTools, xselTools}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		candidates = append([]toolSet{wlClipboard}, candidates...)
	}
	for _, ts := range candidates {
		if hasCommands(ts.requires) {
			return ts, true
		}
	}
	return toolSet{}, false
}

func hasCommands(names []string) bool {
	for _, n := range names {
		if _, err := exec.LookPath(n); err != nil {
			return false
		}
	}
	return true
}

func newToolBackend(ts toolSet) *toolBackend {
	return &toolBackend{tools: ts, timeout: defaultToolTimeout}
}

func (b *toolBackend) Name() string { return "clipboard tool (" + b.tools.name + ")" }

func (b *toolBackend) Read() (string, error) {
	out, err := b.run(b.tools.read, nil)
	if err != nil {
		return "", &AccessError{Op: "read", Backend: b.Name(), Err: err}
	}
	return out, nil
}

func (b *toolBackend) Write(text string) error {
	if _, err := b.run(b.tools.write, strings.NewReader(text)); err != nil {
		return &AccessError{Op: "write", Backend: b.Name(), Err: err}
	}
	return nil
}

// ReadSelection reads the primary selection with the tool's explicit
// primary-selection arguments.
func (b *toolBackend) ReadSelection() (string, error) {
	out, err := b.run(b.tools.selection, nil)
	if err != nil {
		return "", &AccessError{Op: "selection", Backend: b.Name(), Err: err}
	}
	return out, nil
}

func (b *toolBackend) run(argv []string, stdin *strings.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// xclip and wl-copy fork a child that keeps serving the selection;
	// it must not hold our pipes open past the timeout.
	cmd.WaitDelay = b.timeout
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	if stdin == nil {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return "", fmt.Errorf("%s: %w", argv[0], errToolTimeout)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", argv[0], err)
	}
	return stdout.String(), nil
}

// atottoBackend covers the utilities atotto knows beyond the ones above
// (termux-clipboard on Android). atotto offers no cancellation, so calls
// are abandoned after the timeout rather than killed.
type atottoBackend struct {
	timeout time.Duration
}

func (b *atottoBackend) Name() string { return "atotto/clipboard" }

func (b *atottoBackend) Read() (string, error) {
	var text string
	err := b.within(func() (err error) {
		text, err = clipboard.ReadAll()
		return err
	})
	if err != nil {
		return "", &AccessError{Op: "read", Backend: b.Name(), Err: err}
	}
	return text, nil
}

func (b *atottoBackend) Write(text string) error {
	if err := b.within(func() error { return clipboard.WriteAll(text) }); err != nil {
		return &AccessError{Op: "write", Backend: b.Name(), Err: err}
	}
	return nil
}

func (b *atottoBackend) within(fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return errToolTimeout
	}
}
