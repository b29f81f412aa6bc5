package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRawMessage(t *testing.T) {
	raw := buildRawMessage("me@example.com", "you@example.com", "Hello", "First line\nSecond line")

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)

	message := string(decoded)
	headers, body, found := strings.Cut(message, "\r\n\r\n")
	require.True(t, found, "headers and body must be separated by a blank line")

	assert.Contains(t, headers, "From: me@example.com\r\n")
	assert.Contains(t, headers, "To: you@example.com\r\n")
	assert.Contains(t, headers, "Subject: Hello\r\n")
	assert.Contains(t, headers, "MIME-Version: 1.0\r\n")
	assert.Contains(t, headers, `Content-Type: text/plain; charset="UTF-8"`)
	assert.Equal(t, "First line\nSecond line", body)
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(nil, nil)
	assert.Error(t, err)
}
