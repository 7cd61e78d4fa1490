package randomaccess

import (
	"encoding/binary"

	"github.com/cockroachdb/pebble/v2"
)

// PebbleDiskStore persists decompressed members to an on-disk key-value
// store, so a Cache whose memory tier has evicted a member doesn't have to
// re-decompress a member it has already paid for once: cheap durable
// key/value storage with no external server to run.
type PebbleDiskStore struct {
	db *pebble.DB
}

// OpenPebbleDiskStore opens (creating if necessary) a pebble database at
// dir to back a Cache's disk overflow.
func OpenPebbleDiskStore(dir string) (*PebbleDiskStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleDiskStore{db: db}, nil
}

func (s *PebbleDiskStore) Close() error { return s.db.Close() }

func (s *PebbleDiskStore) Get(key uint64) ([]byte, bool) {
	v, closer, err := s.db.Get(encodeKey(key))
	if err != nil {
		return nil, false
	}
	out := append([]byte(nil), v...) // v is only valid until closer.Close()
	closer.Close()
	return out, true
}

func (s *PebbleDiskStore) Set(key uint64, value []byte) {
	// Best-effort: a failed write just means the next Open for this
	// member falls back to decompressing again, not data loss.
	_ = s.db.Set(encodeKey(key), value, pebble.NoSync)
}

func encodeKey(key uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	return buf[:]
}
