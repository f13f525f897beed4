package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clippy/internal/bridge"
)

func load(t *testing.T, toml string) (*Config, error) {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(toml)))
	return FromViper(v)
}

func TestFromViperFull(t *testing.T) {
	cfg, err := load(t, `
server_url = "https://relay.example.com/"
token = "s3cret"
device_id = "laptop"
device_name = "Work laptop"
priority = ["phone", "laptop"]
use_latest_per_device = false
inject_mode = "paste"
capture_timeout = "750ms"
paste_restore_delay = "80ms"
pull_limit = 10
tls_pin_sha256 = "ab:cd"
`)
	require.NoError(t, err)

	assert.Equal(t, "https://relay.example.com", cfg.ServerURL)
	assert.Equal(t, "s3cret", cfg.Token)
	assert.Equal(t, "laptop", cfg.DeviceID)
	assert.Equal(t, "Work laptop", cfg.DeviceName)
	assert.Equal(t, []string{"phone", "laptop"}, cfg.Priority)
	assert.False(t, cfg.UseLatestPerDevice)
	assert.Equal(t, bridge.ModePaste, cfg.InjectMode)
	assert.Equal(t, 750*time.Millisecond, cfg.Timing.CaptureTimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.Timing.PollInterval)
	assert.Equal(t, 30*time.Millisecond, cfg.Timing.SettleDelay)
	assert.Equal(t, 80*time.Millisecond, cfg.Timing.RestoreDelay)
	assert.Equal(t, 10, cfg.PullLimit)
	assert.Equal(t, "ab:cd", cfg.TLSPinSHA256)
	assert.Empty(t, cfg.TLSCAFile)
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := load(t, `
server_url = "http://localhost:8000"
token = "t"
device_id = "desk"
`)
	require.NoError(t, err)

	assert.Equal(t, "desk", cfg.DeviceName, "device_name falls back to device_id")
	assert.Empty(t, cfg.Priority)
	assert.True(t, cfg.UseLatestPerDevice)
	assert.Equal(t, bridge.ModeAuto, cfg.InjectMode)
	assert.Equal(t, bridge.DefaultTiming(), cfg.Timing)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 50, cfg.PullLimit)
}

func TestFromViperMissingFields(t *testing.T) {
	_, err := load(t, `device_name = "x"`)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "server_url, token, device_id")

	_, err = load(t, `
server_url = "http://x"
device_id = "d"
`)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "token")
	assert.NotContains(t, err.Error(), "device_id")
}

func TestFromViperBadInjectMode(t *testing.T) {
	_, err := load(t, `
server_url = "http://x"
token = "t"
device_id = "d"
inject_mode = "telepathy"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inject_mode")
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("CLIPPY_DEVICE_ID", "from-env")

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
server_url = "http://x"
token = "t"
device_id = "from-file"
`)))
	v.SetEnvPrefix("CLIPPY")
	v.AutomaticEnv()

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DeviceID)
}

func TestPriorityFromEnv(t *testing.T) {
	for _, env := range []string{"phone,laptop", "phone laptop", " phone, laptop ,"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("CLIPPY_PRIORITY", env)

			v := viper.New()
			SetDefaults(v)
			v.SetConfigType("toml")
			require.NoError(t, v.ReadConfig(strings.NewReader(`
server_url = "http://x"
token = "t"
device_id = "desk"
priority = ["ignored"]
`)))
			v.SetEnvPrefix("CLIPPY")
			v.AutomaticEnv()

			cfg, err := FromViper(v)
			require.NoError(t, err)
			assert.Equal(t, []string{"phone", "laptop"}, cfg.Priority)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, "/home/someone/.config/clippy.toml", DefaultPath())
}
