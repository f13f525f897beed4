package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clippy/internal/bridge"
	"go.klb.dev/clippy/internal/config"
	"go.klb.dev/clippy/internal/relay"
	"go.klb.dev/clippy/internal/tlsconf"
)

// detectPlatform is swapped out by tests.
var detectPlatform = bridge.Detect

// bindViper wires a command's flags into a viper instance with the default
// config path and CLIPPY_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPPY_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	config.SetDefaults(v)

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			// A missing default file is fine as long as env vars fill the
			// gaps; a missing explicit one is not.
			if cmd.Flags().Changed("config") || !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("CLIPPY")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "debug logging")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info, debug with --verbose)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", config.DefaultPath(), "path to config file")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	resolveLogging(v.GetBool("verbose"), v.GetString("log-format"), v.GetString("log-level"))
}

// loadConfig sets up logging and returns the validated config.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	setupLogging(v)
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, fail(exitFailure, fmt.Errorf("config: %w", err))
	}
	return cfg, nil
}

func newRelayClient(cfg *config.Config) (*relay.Client, error) {
	tlsCfg, err := tlsconf.ClientConfig(tlsconf.Options{
		CAFile:    cfg.TLSCAFile,
		PinSHA256: cfg.TLSPinSHA256,
	})
	if err != nil {
		return nil, fail(exitFailure, err)
	}
	return relay.New(cfg.ServerURL, cfg.Token, relay.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		PullLimit:      cfg.PullLimit,
		TLSConfig:      tlsCfg,
	}), nil
}
