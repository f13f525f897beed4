package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clippy/internal/arbitrate"
	"go.klb.dev/clippy/internal/message"
)

const listPreviewRunes = 40

func newClipsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "clips",
		Short: "List the clips fetch would choose from",
		Long: `Pulls clips from the relay and prints them newest-first. The clip that
"clippy fetch" would deliver is marked with *.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClips(cmd.Context(), v, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Bool("json", false, "output raw JSON")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runClips(ctx context.Context, v *viper.Viper, out io.Writer) error {
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
	items, err := rc.Pull(ctx, cfg.UseLatestPerDevice)
	if err != nil {
		return fail(exitFailure, fmt.Errorf("pull: %w", err))
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(message.List{Items: items})
	}

	printClips(out, items, cfg.Priority)
	return nil
}

func printClips(out io.Writer, items []message.RemoteClip, priority []string) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No clips.")
		return
	}
	chosen, _ := arbitrate.ChooseClip(priority, items)

	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "\tCLIP\tDEVICE\tNAME\tTYPE\tPREVIEW\n")
	_, _ = fmt.Fprintf(tw, "\t----\t------\t----\t----\t-------\n")
	for _, it := range items {
		marker := ""
		if it.ClipID == chosen.ClipID && it.DeviceID == chosen.DeviceID {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			marker, it.ClipID, it.DeviceID, orDash(it.DeviceName), orDash(it.ContentType), preview(it),
		)
	}
	_ = tw.Flush()
}

func preview(it message.RemoteClip) string {
	text, err := it.Text()
	if err != nil {
		return "-"
	}
	text = strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`).Replace(text)
	r := []rune(text)
	if len(r) > listPreviewRunes {
		return string(r[:listPreviewRunes]) + "…"
	}
	return text
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
