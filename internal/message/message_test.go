package message

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteClipText(t *testing.T) {
	c := RemoteClip{ClipID: 7, ContentB64: base64.StdEncoding.EncodeToString([]byte("héllo"))}
	text, err := c.Text()
	require.NoError(t, err)
	assert.Equal(t, "héllo", text)
}

func TestRemoteClipTextReplacesInvalidUTF8(t *testing.T) {
	c := RemoteClip{ContentB64: base64.StdEncoding.EncodeToString([]byte{'a', 0xff, 'b'})}
	text, err := c.Text()
	require.NoError(t, err)
	assert.Equal(t, "a�b", text)
}

func TestRemoteClipMissingContent(t *testing.T) {
	_, err := RemoteClip{ClipID: 1}.Text()
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestRemoteClipBadBase64(t *testing.T) {
	_, err := RemoteClip{ClipID: 3, ContentB64: "!!!"}.Decode()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoContent)
	assert.Contains(t, err.Error(), "clip 3")
}

func TestClipJSONFieldNames(t *testing.T) {
	b, err := json.Marshal(NewTextClip("laptop", "Work laptop", "hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"device_id": "laptop",
		"device_name": "Work laptop",
		"content_type": "text/plain",
		"content_text": "hi"
	}`, string(b))
}
