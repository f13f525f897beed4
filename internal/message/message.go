// Package message defines the clippy relay wire types.
//
// All bodies are JSON. Clip content travels base64-encoded on the pull side
// (content_b64) so that arbitrary bytes survive the JSON string, and as plain
// text on the push side (content_text).
package message

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ContentTypeText is the only content type clippy sends.
const ContentTypeText = "text/plain"

// ErrNoContent is returned when a clip carries no content payload.
var ErrNoContent = errors.New("clip has no content payload")

// Clip is the push payload: one captured text selection.
type Clip struct {
	DeviceID    string `json:"device_id"`
	DeviceName  string `json:"device_name"`
	ContentType string `json:"content_type"`
	ContentText string `json:"content_text"`
}

// NewTextClip creates a text/plain Clip from a captured string.
func NewTextClip(deviceID, deviceName, text string) Clip {
	return Clip{
		DeviceID:    deviceID,
		DeviceName:  deviceName,
		ContentType: ContentTypeText,
		ContentText: text,
	}
}

// RemoteClip is a clip as stored and returned by the relay. It is immutable
// once received; creation order is implied by its position in a List.
type RemoteClip struct {
	ClipID      int64  `json:"clip_id"`
	DeviceID    string `json:"device_id"`
	DeviceName  string `json:"device_name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	ContentB64  string `json:"content_b64,omitempty"`
}

// Decode returns the raw bytes of the clip payload.
func (c RemoteClip) Decode() ([]byte, error) {
	if c.ContentB64 == "" {
		return nil, ErrNoContent
	}
	b, err := base64.StdEncoding.DecodeString(c.ContentB64)
	if err != nil {
		return nil, fmt.Errorf("clip %d: base64 decode: %w", c.ClipID, err)
	}
	return b, nil
}

// Text returns the decoded payload as UTF-8, replacing invalid sequences
// with U+FFFD.
func (c RemoteClip) Text() (string, error) {
	b, err := c.Decode()
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(b), "�"), nil
}

// List is the relay's pull response. Items are ordered newest-first.
type List struct {
	Items []RemoteClip `json:"items"`
}
