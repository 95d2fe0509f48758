package compact

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipCodecRoundTrip(t *testing.T) {
	codec := GzipCodec{}
	text := strings.Repeat(`{"f0":"2026-01-02","f1":"LTAF"},`, 200)

	compressed, err := codec.Compress(text)
	require.NoError(t, err)
	assert.NotEqual(t, text, compressed)
	assert.Less(t, len(compressed), len(text), "repetitive payload should shrink")

	_, err = base64.StdEncoding.DecodeString(compressed)
	require.NoError(t, err, "compressed form must stay base64")

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, text, restored)
}

func TestGzipCodecEmptyInput(t *testing.T) {
	codec := GzipCodec{}
	compressed, err := codec.Compress("")
	require.NoError(t, err)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, "", restored)
}

func TestGzipCodecRejectsCorruptInput(t *testing.T) {
	codec := GzipCodec{}

	_, err := codec.Decompress("***not base64***")
	assert.Error(t, err)

	notGzip := base64.StdEncoding.EncodeToString([]byte("plain text"))
	_, err = codec.Decompress(notGzip)
	assert.Error(t, err)
}
