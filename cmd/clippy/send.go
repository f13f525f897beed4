package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clippy/internal/bridge"
	"go.klb.dev/clippy/internal/logging"
	"go.klb.dev/clippy/internal/message"
)

var errNothingCaptured = errors.New("nothing selected")

func newSendCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Push the selected text to the relay",
		Long: `Captures the text highlighted in the focused application and pushes it
to the relay.

The primary selection is used where the platform has one. Otherwise a copy
keystroke is sent to the focused window and the clipboard is watched for the
result, then put back to what it held before.

Exits 5 if nothing was selected.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd.Context(), v, cmd.InOrStdin())
		},
	}

	f := cmd.Flags()
	f.Bool("stdin", false, "push stdin instead of the current selection")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runSend(ctx context.Context, v *viper.Viper, stdin io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	var text string
	if v.GetBool("stdin") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fail(exitFailure, fmt.Errorf("read stdin: %w", err))
		}
		text = strings.TrimSuffix(string(data), "\n")
	} else {
		text = bridge.New(detectPlatform(), cfg.Timing, cfg.InjectMode).Capture()
	}

	if text == "" {
		slog.Info("send: nothing captured")
		return fail(exitNoCapture, errNothingCaptured)
	}

	rc, err := newRelayClient(cfg)
	if err != nil {
		return err
	}
	clip := message.NewTextClip(cfg.DeviceID, cfg.DeviceName, text)
	if err := rc.Push(ctx, clip); err != nil {
		return fail(exitFailure, fmt.Errorf("push: %w", err))
	}
	logging.LogText("send: clip pushed", text, "device", cfg.DeviceID)
	return nil
}
