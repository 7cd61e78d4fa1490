// Package gzip implements the gzip container format described in
// RFC 1952: a fixed 10-byte header, optional metadata sections gated by
// FLG bits, a DEFLATE payload handed to internal/flate, and an 8-byte
// trailer carrying a CRC-32 and uncompressed length that this package
// verifies against the core's output. Framing, CRC verification, and any
// file I/O stay outside the DEFLATE core itself.
package gzip

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mras0/deflate/internal/crc32c"
	"github.com/mras0/deflate/internal/flate"
)

const (
	id1 = 0x1f
	id2 = 0x8b
	cmDeflate = 8
)

const (
	ftext    = 1 << 0
	fhcrc    = 1 << 1
	fextra   = 1 << 2
	fname    = 1 << 3
	fcomment = 1 << 4
)

// ErrHeader reports a malformed gzip header or an unterminated optional
// section (e.g. a missing NUL in FNAME/FCOMMENT, or a truncated FEXTRA).
var ErrHeader = errors.New("gzip: invalid header")

// ErrChecksum reports that the trailer's CRC32 or ISIZE field does not
// match the decompressed data.
var ErrChecksum = errors.New("gzip: checksum mismatch")

// Header carries the metadata fields a caller might want after a
// successful decompress: original filename/comment, and modification
// time, when present.
type Header struct {
	ModTime time.Time
	OS      byte
	Name    string
	Comment string
}

// Decompress parses one gzip member from data (no multi-member
// concatenation support) and returns its decompressed payload after
// verifying the trailer's CRC-32 and ISIZE against it.
func Decompress(data []byte) ([]byte, Header, error) {
	var hdr Header

	if len(data) < 10 {
		return nil, hdr, ErrHeader
	}
	if data[0] != id1 || data[1] != id2 {
		return nil, hdr, ErrHeader
	}
	cm := data[2]
	if cm != cmDeflate {
		return nil, hdr, fmt.Errorf("gzip: unsupported compression method %d", cm)
	}
	flg := data[3]
	mtime := binary.LittleEndian.Uint32(data[4:8])
	if mtime != 0 {
		hdr.ModTime = time.Unix(int64(mtime), 0)
	}
	hdr.OS = data[9]

	pos := 10

	if flg&fextra != 0 {
		if pos+2 > len(data) {
			return nil, hdr, ErrHeader
		}
		xlen := int(data[pos]) | int(data[pos+1])<<8
		pos += 2
		if pos+xlen > len(data) {
			return nil, hdr, ErrHeader
		}
		pos += xlen
	}

	if flg&fname != 0 {
		s, next, ok := readCString(data, pos)
		if !ok {
			return nil, hdr, ErrHeader
		}
		hdr.Name = s
		pos = next
	}

	if flg&fcomment != 0 {
		s, next, ok := readCString(data, pos)
		if !ok {
			return nil, hdr, ErrHeader
		}
		hdr.Comment = s
		pos = next
	}

	if flg&fhcrc != 0 {
		if pos+2 > len(data) {
			return nil, hdr, ErrHeader
		}
		pos += 2
	}

	if pos+8 > len(data) {
		return nil, hdr, ErrHeader
	}

	payload := data[pos : len(data)-8]
	trailer := data[len(data)-8:]

	out, err := flate.Decompress(payload)
	if err != nil {
		return nil, hdr, err
	}

	wantCRC := binary.LittleEndian.Uint32(trailer[0:4])
	wantSize := binary.LittleEndian.Uint32(trailer[4:8])

	if gotCRC := crc32c.Update(0, out); gotCRC != wantCRC {
		return nil, hdr, ErrChecksum
	}
	if gotSize := uint32(len(out)); gotSize != wantSize {
		return nil, hdr, ErrChecksum
	}
	return out, hdr, nil
}

// readCString returns the NUL-terminated string starting at pos (not
// including the terminator) and the position just past it.
func readCString(data []byte, pos int) (string, int, bool) {
	end := bytes.IndexByte(data[pos:], 0)
	if end < 0 {
		return "", 0, false
	}
	return string(data[pos : pos+end]), pos + end + 1, true
}

// Reader wraps a fully materialized gzip member as an io.Reader, for
// callers that want an io.Reader rather than a []byte. The whole
// decompressed result is still held in memory; Read only copies out of
// it.
type Reader struct {
	Header
	r *bytes.Reader
}

// NewReader decompresses data eagerly and returns a Reader over the
// result. Eager decompression keeps faith with the core's no-partial-
// output-on-error contract while still offering an io.Reader for callers
// that want one.
func NewReader(data []byte) (*Reader, error) {
	out, hdr, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	return &Reader{Header: hdr, r: bytes.NewReader(out)}, nil
}

func (r *Reader) Read(p []byte) (int, error) { return r.r.Read(p) }

var _ io.Reader = (*Reader)(nil)
