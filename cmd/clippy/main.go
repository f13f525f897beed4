// clippy: copy text on one device, fetch it on another, without clobbering
// the local clipboard.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/clippy/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "Error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitFailure
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clippy",
		Short: "Cross-device text relay that leaves your clipboard alone",
		Long: `clippy moves text between devices through a relay server.

"clippy send" captures the text highlighted in the focused application and
pushes it to the relay. "clippy fetch" pulls the best clip (see priority) and
types or pastes it into the focused application. Both put the clipboard back
the way they found it.

Bind both commands to global hotkeys.

Config file: ~/.config/clippy.toml, or the path supplied via --config.
Every key can also be set via CLIPPY_<KEY> env vars; list values such as
priority are comma- or space-separated (CLIPPY_PRIORITY=phone,laptop).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSendCmd(),
		newFetchCmd(),
		newClipsCmd(),
		newPinCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clippy %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(verbose bool, formatStr, levelStr string) {
	fallback := slog.LevelInfo
	if verbose {
		fallback = slog.LevelDebug
	}
	logging.Setup(logging.ParseFormat(formatStr), logging.ParseLevel(levelStr, fallback))
}
