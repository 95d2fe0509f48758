package compact

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
)

// Payload is the transport form of an encoded report: an opaque body plus
// an out-of-band indicator telling the receiver which decode path to run.
// The indicator, never content sniffing, decides whether Body is expanded
// before parsing.
type Payload struct {
	Body       string `json:"payload"`
	Compressed bool   `json:"compressed"`
}

// Codec is a reversible text compression pass applied after structural
// encoding. Implementations must guarantee Decompress(Compress(s)) == s.
type Codec interface {
	Compress(text string) (string, error)
	Decompress(payload string) (string, error)
}

// GzipCodec compresses with gzip and armors the result in standard base64
// so the payload stays a printable string inside JSON transport.
type GzipCodec struct{}

// Compress gzips text and returns it base64-encoded.
func (GzipCodec) Compress(text string) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("failed to write gzip stream: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decompress reverses Compress. It fails on anything that is not the
// base64 form of a gzip stream.
func (GzipCodec) Decompress(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("payload is not valid base64: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("payload is not a gzip stream: %w", err)
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("failed to read gzip stream: %w", err)
	}
	return string(text), nil
}
