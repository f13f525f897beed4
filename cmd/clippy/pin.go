package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clippy/internal/config"
	"go.klb.dev/clippy/internal/tlsconf"
)

func newPinCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "pin [url|host:port]",
		Short: "Print the public-key pin of a TLS relay",
		Long: `Connects to the relay (server_url from the config, or the argument) and
prints the SHA-256 pin of the certificate it presents, ready to paste into
tls_pin_sha256. The certificate is not verified: check the pin out of band
before trusting it.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return runPin(cmd.Context(), v, target, cmd.OutOrStdout())
		},
	}

	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runPin(ctx context.Context, v *viper.Viper, target string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	setupLogging(v)
	if target == "" {
		target = v.GetString(config.KeyServerURL)
	}
	if target == "" {
		return fail(exitFailure, fmt.Errorf("no relay given and %s is not set", config.KeyServerURL))
	}

	timeout := v.GetDuration(config.KeyConnectTimeout)
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pin, err := tlsconf.FetchPin(ctx, target, timeout)
	if err != nil {
		return fail(exitFailure, err)
	}
	_, err = fmt.Fprintln(out, pin)
	return err
}
