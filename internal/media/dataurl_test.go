package media

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pixel, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

func TestDataURLEncodesPNG(t *testing.T) {
	url, err := DataURL(bytes.NewReader(pixel), 1024)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pixel, decoded)
}

func TestDataURLRejectsNonImage(t *testing.T) {
	_, err := DataURL(strings.NewReader("just some text"), 1024)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestDataURLRejectsOversize(t *testing.T) {
	_, err := DataURL(bytes.NewReader(pixel), 10)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDataURLRejectsEmpty(t *testing.T) {
	_, err := DataURL(bytes.NewReader(nil), 10)
	assert.ErrorIs(t, err, ErrEmptyUpload)
}
