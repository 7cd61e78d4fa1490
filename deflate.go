// Package deflate decompresses DEFLATE streams (RFC 1951) and the gzip
// container format built on top of them (RFC 1952). The package itself is
// a thin façade: Decompress and NewReader forward to internal/gzip, which
// in turn drives internal/flate's block engine.
package deflate

import (
	"github.com/mras0/deflate/internal/gzip"
)

// Header carries the gzip member metadata a caller might want after a
// successful Decompress or NewReader call.
type Header = gzip.Header

// Reader wraps a fully materialized gzip member as an io.Reader.
type Reader = gzip.Reader

// Decompress parses one gzip member from data and returns its
// decompressed payload, after verifying the trailer's CRC-32 and ISIZE
// against it.
func Decompress(data []byte) ([]byte, Header, error) {
	return gzip.Decompress(data)
}

// NewReader decompresses data eagerly and returns a Reader over the
// result.
func NewReader(data []byte) (*Reader, error) {
	return gzip.NewReader(data)
}
