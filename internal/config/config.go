// Package config holds the settings of one clippy invocation. Values are
// layered by viper: defaults → config file → CLIPPY_* env vars → flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/viper"

	"go.klb.dev/clippy/internal/bridge"
)

// Config keys as they appear in clippy.toml.
const (
	KeyServerURL           = "server_url"
	KeyToken               = "token"
	KeyDeviceID            = "device_id"
	KeyDeviceName          = "device_name"
	KeyPriority            = "priority"
	KeyUseLatestPerDevice  = "use_latest_per_device"
	KeyInjectMode          = "inject_mode"
	KeyCaptureTimeout      = "capture_timeout"
	KeyCapturePollInterval = "capture_poll_interval"
	KeyPasteSettleDelay    = "paste_settle_delay"
	KeyPasteRestoreDelay   = "paste_restore_delay"
	KeyConnectTimeout      = "connect_timeout"
	KeyReadTimeout         = "read_timeout"
	KeyPullLimit           = "pull_limit"
	KeyTLSCAFile           = "tls_ca_file"
	KeyTLSPinSHA256        = "tls_pin_sha256"
)

// ErrMissingField is returned when a required key has no value.
var ErrMissingField = errors.New("missing required config field")

// Config is read once per invocation and never modified afterwards.
type Config struct {
	ServerURL          string
	Token              string
	DeviceID           string
	DeviceName         string
	Priority           []string
	UseLatestPerDevice bool

	InjectMode     bridge.InjectMode
	Timing         bridge.Timing
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	PullLimit      int

	TLSCAFile    string
	TLSPinSHA256 string
}

// DefaultPath returns ~/.config/clippy.toml, or "" if there is no home dir.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "clippy.toml")
}

// SetDefaults registers default values for every optional key.
func SetDefaults(v *viper.Viper) {
	t := bridge.DefaultTiming()
	v.SetDefault(KeyPriority, []string{})
	v.SetDefault(KeyUseLatestPerDevice, true)
	v.SetDefault(KeyInjectMode, string(bridge.ModeAuto))
	v.SetDefault(KeyCaptureTimeout, t.CaptureTimeout)
	v.SetDefault(KeyCapturePollInterval, t.PollInterval)
	v.SetDefault(KeyPasteSettleDelay, t.SettleDelay)
	v.SetDefault(KeyPasteRestoreDelay, t.RestoreDelay)
	v.SetDefault(KeyConnectTimeout, 3*time.Second)
	v.SetDefault(KeyReadTimeout, 10*time.Second)
	v.SetDefault(KeyPullLimit, 50)
}

// FromViper builds and validates a Config. Missing required fields are
// reported together, wrapped around ErrMissingField.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServerURL:          strings.TrimRight(strings.TrimSpace(v.GetString(KeyServerURL)), "/"),
		Token:              v.GetString(KeyToken),
		DeviceID:           strings.TrimSpace(v.GetString(KeyDeviceID)),
		DeviceName:         strings.TrimSpace(v.GetString(KeyDeviceName)),
		Priority:           splitDevices(v.GetStringSlice(KeyPriority)),
		UseLatestPerDevice: v.GetBool(KeyUseLatestPerDevice),
		Timing: bridge.Timing{
			CaptureTimeout: v.GetDuration(KeyCaptureTimeout),
			PollInterval:   v.GetDuration(KeyCapturePollInterval),
			SettleDelay:    v.GetDuration(KeyPasteSettleDelay),
			RestoreDelay:   v.GetDuration(KeyPasteRestoreDelay),
		},
		ConnectTimeout: v.GetDuration(KeyConnectTimeout),
		ReadTimeout:    v.GetDuration(KeyReadTimeout),
		PullLimit:      v.GetInt(KeyPullLimit),
		TLSCAFile:      v.GetString(KeyTLSCAFile),
		TLSPinSHA256:   v.GetString(KeyTLSPinSHA256),
	}

	var missing []string
	if cfg.ServerURL == "" {
		missing = append(missing, KeyServerURL)
	}
	if cfg.Token == "" {
		missing = append(missing, KeyToken)
	}
	if cfg.DeviceID == "" {
		missing = append(missing, KeyDeviceID)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	if cfg.DeviceName == "" {
		cfg.DeviceName = cfg.DeviceID
	}

	mode, err := bridge.ParseInjectMode(v.GetString(KeyInjectMode))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyInjectMode, err)
	}
	cfg.InjectMode = mode

	return cfg, nil
}

// splitDevices flattens priority entries on commas and whitespace, so that
// CLIPPY_PRIORITY="phone,laptop" and "phone laptop" both yield two ids.
func splitDevices(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.FieldsFunc(e, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	return out
}
