package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clippy/internal/input"
)

func TestInjectTypingNeverTouchesClipboard(t *testing.T) {
	cb := &fakeClipboard{text: "original"}
	in := &fakeInjector{canType: true}
	b := New(testPlatform(cb, in), fastTiming(), ModeAuto)

	require.NoError(t, b.Inject("héllo"))

	assert.Equal(t, []string{"héllo"}, in.typed)
	assert.Zero(t, cb.reads)
	assert.Empty(t, cb.writes)
	assert.Empty(t, in.chords)
}

func TestInjectPasteRestoresClipboard(t *testing.T) {
	cb := &fakeClipboard{text: "original"}
	in := &fakeInjector{target: cb}
	b := New(testPlatform(cb, in), fastTiming(), ModeAuto)

	require.NoError(t, b.Inject("payload"))

	assert.Equal(t, 1, cb.reads)
	assert.Equal(t, []string{"payload", "original"}, cb.writes)
	assert.Equal(t, "original", cb.text)
	assert.Equal(t, []string{"payload"}, in.pasted)
	assert.Equal(t, []input.Chord{ctrlV}, in.chords)
	assert.Empty(t, in.typed)
}

func TestInjectModes(t *testing.T) {
	tests := []struct {
		name      string
		mode      InjectMode
		canType   bool
		wantTyped bool
	}{
		{name: "auto types when native", mode: ModeAuto, canType: true, wantTyped: true},
		{name: "auto pastes otherwise", mode: ModeAuto, canType: false},
		{name: "type forced", mode: ModeType, canType: false, wantTyped: true},
		{name: "paste forced", mode: ModePaste, canType: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := &fakeClipboard{text: "o"}
			in := &fakeInjector{canType: tt.canType, target: cb}
			require.NoError(t, New(testPlatform(cb, in), fastTiming(), tt.mode).Inject("t"))
			if tt.wantTyped {
				assert.Equal(t, []string{"t"}, in.typed)
				assert.Empty(t, cb.writes)
			} else {
				assert.Empty(t, in.typed)
				assert.Equal(t, []string{"t", "o"}, cb.writes)
			}
		})
	}
}

func TestInjectUnsupported(t *testing.T) {
	var upe *UnsupportedPlatformError

	err := New(Platform{Name: "linux/wayland", Clipboard: &fakeClipboard{}}, fastTiming(), ModeAuto).Inject("x")
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, "linux/wayland", upe.Platform)

	err = New(Platform{Name: "no-clip", Input: &fakeInjector{}}, fastTiming(), ModePaste).Inject("x")
	require.ErrorAs(t, err, &upe)
}

func TestInjectTypeErrorPropagates(t *testing.T) {
	ie := &input.InjectionError{Submitted: 2, Accepted: 0}
	in := &fakeInjector{canType: true, typeErr: ie}
	err := New(testPlatform(&fakeClipboard{}, in), fastTiming(), ModeAuto).Inject("x")

	var got *input.InjectionError
	require.ErrorAs(t, err, &got)
	assert.Same(t, ie, got)
}

func TestInjectPasteChordFailureStillRestores(t *testing.T) {
	cb := &fakeClipboard{text: "original"}
	in := &fakeInjector{chordErr: &input.InjectionError{Submitted: 4, Accepted: 1}}
	err := New(testPlatform(cb, in), fastTiming(), ModeAuto).Inject("payload")

	var ie *input.InjectionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"payload", "original"}, cb.writes)
	assert.Equal(t, "original", cb.text)
}

func TestInjectPayloadWriteFailure(t *testing.T) {
	cb := &fakeClipboard{text: "original", writeErr: errBoom}
	in := &fakeInjector{}
	err := New(testPlatform(cb, in), fastTiming(), ModeAuto).Inject("payload")

	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, in.chords, "no paste without a payload")
	assert.Len(t, cb.writes, 1)
}

func TestParseInjectMode(t *testing.T) {
	for in, want := range map[string]InjectMode{"": ModeAuto, "AUTO": ModeAuto, " type ": ModeType, "paste": ModePaste} {
		got, err := ParseInjectMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseInjectMode("xdotool")
	assert.Error(t, err)
}

func TestNewFillsTimingDefaults(t *testing.T) {
	b := New(Platform{}, Timing{SettleDelay: 5}, "")
	assert.Equal(t, DefaultTiming().CaptureTimeout, b.timing.CaptureTimeout)
	assert.Equal(t, DefaultTiming().RestoreDelay, b.timing.RestoreDelay)
	assert.EqualValues(t, 5, b.timing.SettleDelay)
	assert.Equal(t, ModeAuto, b.mode)
}
