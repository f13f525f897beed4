package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clippy/internal/arbitrate"
	"go.klb.dev/clippy/internal/bridge"
	"go.klb.dev/clippy/internal/config"
	"go.klb.dev/clippy/internal/logging"
)

var errNoClips = errors.New("no clips available")

func newFetchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Type or paste the best clip from the relay into the focused app",
		Long: `Pulls clips from the relay, picks one using the priority list from the
config, and delivers it to the focused application.

Where the platform supports Unicode key events (Windows) the text is typed and
the clipboard is never touched. Elsewhere it is pasted through the clipboard,
which is restored afterwards.

Exit codes:
  1  config, transport or HTTP failure
  2  the relay has no clips
  3  the chosen clip has no content
  4  the text could not be delivered`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindViper(cmd, v); err != nil {
				return err
			}
			return v.BindPFlag(config.KeyInjectMode, cmd.Flags().Lookup("inject-mode"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd.Context(), v, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Bool("print", false, "write the clip to stdout instead of the focused app")
	f.String("inject-mode", string(bridge.ModeAuto), "delivery method: auto|type|paste")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runFetch(ctx context.Context, v *viper.Viper, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	rc, err := newRelayClient(cfg)
	if err != nil {
		return err
	}
	slog.Info("fetch: requesting", "server", cfg.ServerURL, "latest_per_device", cfg.UseLatestPerDevice)
	items, err := rc.Pull(ctx, cfg.UseLatestPerDevice)
	if err != nil {
		return fail(exitFailure, fmt.Errorf("pull: %w", err))
	}
	slog.Info("fetch: got items", "count", len(items))

	chosen, ok := arbitrate.ChooseClip(cfg.Priority, items)
	if !ok {
		return fail(exitNoClips, errNoClips)
	}
	slog.Info("fetch: chosen", "clip_id", chosen.ClipID, "device", chosen.DeviceID)

	text, err := chosen.Text()
	if err != nil {
		return fail(exitNoContent, err)
	}

	if v.GetBool("print") {
		_, err := io.WriteString(out, text)
		return err
	}

	b := bridge.New(detectPlatform(), cfg.Timing, cfg.InjectMode)
	if err := b.Inject(text); err != nil {
		return fail(exitInject, fmt.Errorf("inject: %w", err))
	}
	logging.LogText("fetch: delivered", text,
		"clip_id", chosen.ClipID,
		"from", chosen.DeviceID,
		"platform", b.Platform().Name,
	)
	return nil
}
