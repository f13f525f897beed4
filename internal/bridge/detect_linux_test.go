//go:build linux

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionType(t *testing.T) {
	tests := []struct {
		name                       string
		sessionType, wayland, disp string
		want                       string
	}{
		{name: "explicit wayland", sessionType: "Wayland", want: "wayland"},
		{name: "explicit x11", sessionType: "x11", wayland: "wayland-0", want: "x11"},
		{name: "wayland display", wayland: "wayland-0", disp: ":0", want: "wayland"},
		{name: "x display", disp: ":0", want: "x11"},
		{name: "headless", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_SESSION_TYPE", tt.sessionType)
			t.Setenv("WAYLAND_DISPLAY", tt.wayland)
			t.Setenv("DISPLAY", tt.disp)
			assert.Equal(t, tt.want, sessionType())
		})
	}
}
