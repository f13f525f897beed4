//go:build windows

package input

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	inputKeyboard = 1

	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004
)

var procSendInput = windows.NewLazySystemDLL("user32.dll").NewProc("SendInput")

var virtualKeys = map[Key]uint16{
	KeyCtrl: 0x11, // VK_CONTROL
	KeyCmd:  0x5B, // VK_LWIN
	"shift":  0x10,
	"alt":    0x12,
	"enter":  0x0D,
}

type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

// winInput mirrors INPUT. The trailing pad sizes the union to MOUSEINPUT,
// its largest member.
type winInput struct {
	typ uint32
	ki  keybdInput
	_   [8]byte
}

// sendInputInjector calls user32!SendInput directly.
type sendInputInjector struct{}

// NewSendInput returns an Injector backed by SendInput.
func NewSendInput() Injector { return &sendInputInjector{} }

func (s *sendInputInjector) Name() string { return "SendInput" }

func (s *sendInputInjector) SendChord(c Chord) error {
	evs := chordEvents(c)
	inputs := make([]winInput, 0, len(evs))
	for _, ev := range evs {
		vk, err := virtualKey(ev.key)
		if err != nil {
			return &InjectionError{Submitted: len(evs), Err: err}
		}
		var flags uint32
		if !ev.down {
			flags = keyeventfKeyUp
		}
		inputs = append(inputs, winInput{typ: inputKeyboard, ki: keybdInput{vk: vk, flags: flags}})
	}
	return sendInput(inputs)
}

func (s *sendInputInjector) TypeUnicode(text string) error {
	for _, ch := range text {
		units := utf16.Encode([]rune{ch})
		inputs := make([]winInput, 0, 2*len(units))
		for _, u := range units {
			inputs = append(inputs, winInput{typ: inputKeyboard, ki: keybdInput{scan: u, flags: keyeventfUnicode}})
		}
		for _, u := range units {
			inputs = append(inputs, winInput{typ: inputKeyboard, ki: keybdInput{scan: u, flags: keyeventfUnicode | keyeventfKeyUp}})
		}
		if err := sendInput(inputs); err != nil {
			return err
		}
	}
	return nil
}

func (s *sendInputInjector) CanType() bool { return true }

func sendInput(inputs []winInput) error {
	if len(inputs) == 0 {
		return nil
	}
	n, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(n) != len(inputs) {
		return &InjectionError{Submitted: len(inputs), Accepted: int(n), Err: callErr}
	}
	return nil
}

// virtualKey maps named keys and single ASCII letters/digits to VK codes.
func virtualKey(k Key) (uint16, error) {
	if vk, ok := virtualKeys[k]; ok {
		return vk, nil
	}
	if len(k) == 1 {
		c := k[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint16(c - 'a' + 'A'), nil
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return uint16(c), nil
		}
	}
	return 0, fmt.Errorf("no virtual key for %q", k)
}
