// Package randomaccess caches decompressed gzip members so that opening
// the same compressed bytes repeatedly (e.g. once per filesystem
// request into a mounted archive) does not re-run the DEFLATE block
// engine each time.
//
// The core decompressor is strictly batch: one call in, one fully
// materialized []byte out, no partial output, no streaming, no
// suspend/resume of a decode in progress. Making the block engine itself
// resumable (checkpointing bit-reader state every chunk so a later read
// can pick up mid-stream) would mean rebuilding it around a mid-decode
// suspend point, which conflicts with keeping the core single-shot and
// synchronous. This package gets the same practical benefit — don't redo
// expensive decompression work for a member that has already been
// decompressed — at whole-member granularity instead: it caches the
// *result* of a full Decompress call, not a resumable position inside
// one.
package randomaccess

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
	tinylfu "github.com/dgryski/go-tinylfu"

	"github.com/mras0/deflate/internal/gzip"
)

// Member is a decompressed gzip member, readable at arbitrary offsets.
type Member struct {
	gzip.Header
	r *bytes.Reader
}

func (m *Member) ReadAt(p []byte, off int64) (int, error) { return m.r.ReadAt(p, off) }
func (m *Member) Size() int64                             { return m.r.Size() }

// Cache decompresses gzip members on demand and remembers the result,
// keyed by the 64-bit xxhash of the compressed bytes (cheap to compute
// even for large inputs). A hit is served without decompressing or
// re-checking the input, so two different inputs whose hashes collide
// would share one cached result.
type Cache struct {
	mu    sync.Mutex
	inMem *tinylfu.Cache
	disk  DiskStore // nil if no on-disk overflow was configured
}

// DiskStore is the narrow interface Cache needs from an on-disk overflow
// store; *PebbleDiskStore implements it over cockroachdb/pebble.
type DiskStore interface {
	Get(key uint64) ([]byte, bool)
	Set(key uint64, value []byte)
}

// New returns a Cache that keeps up to size decompressed members
// in memory under a tinylfu admission policy. If a DiskStore is given,
// every newly decompressed member is also written to it, and a member
// missing from memory is looked up there before decompressing again.
func New(size int, disk DiskStore) *Cache {
	return &Cache{
		inMem: tinylfu.New(size, size*10),
		disk:  disk,
	}
}

// Open decompresses compressed (a complete gzip member) or returns a
// cached result from a previous call with byte-identical input. Only the
// decompressed bytes are cached: a Member served from the cache has an
// empty Header.
func (c *Cache) Open(compressed []byte) (*Member, error) {
	key := xxhash.Sum64(compressed)

	if out, ok := c.lookup(key); ok {
		return &Member{r: bytes.NewReader(out)}, nil
	}

	out, hdr, err := gzip.Decompress(compressed)
	if err != nil {
		return nil, err
	}
	c.store(key, out)
	return &Member{Header: hdr, r: bytes.NewReader(out)}, nil
}

func (c *Cache) lookup(key uint64) ([]byte, bool) {
	c.mu.Lock()
	v, ok := c.inMem.Get(keyString(key))
	c.mu.Unlock()
	if ok {
		return v.([]byte), true
	}
	if c.disk != nil {
		if out, ok := c.disk.Get(key); ok {
			c.mu.Lock()
			c.inMem.Add(keyString(key), out)
			c.mu.Unlock()
			return out, true
		}
	}
	return nil, false
}

func (c *Cache) store(key uint64, out []byte) {
	c.mu.Lock()
	c.inMem.Add(keyString(key), out)
	c.mu.Unlock()
	if c.disk != nil {
		c.disk.Set(key, out)
	}
}

// keyString renders a uint64 cache key as the string tinylfu's API
// takes: its 8 bytes, least significant first.
func keyString(key uint64) string {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(key >> (8 * i))
	}
	return string(buf[:])
}
