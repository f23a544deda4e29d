// Package store persists the budget blob. A Backend moves opaque bytes and a
// Codec turns them into a model.Budget and back.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// BlobKey names the single persisted value.
const BlobKey = "money-dials-data"

// ErrNotFound is returned by Backend.Get when nothing has been persisted yet.
var ErrNotFound = errors.New("store: blob not found")

// Backend reads and writes the raw persisted blob.
type Backend interface {
	Get() ([]byte, error)
	Put(data []byte) error
	Close() error
}

// Options selects the backend and codec for Open.
type Options struct {
	Backend string // file, sqlite or memory
	Format  string // json or cbor
	Dir     string
}

// Open builds the backend/codec pair described by opts.
func Open(opts Options) (Backend, Codec, error) {
	codec, err := CodecByName(opts.Format)
	if err != nil {
		return nil, nil, err
	}

	switch opts.Backend {
	case "", "file":
		return NewFileBackend(filepath.Join(opts.Dir, "budget."+codec.Ext())), codec, nil
	case "sqlite":
		b, err := OpenSQLite(filepath.Join(opts.Dir, "dials.db"))
		if err != nil {
			return nil, nil, err
		}
		return b, codec, nil
	case "memory":
		return NewMemoryBackend(), codec, nil
	default:
		return nil, nil, fmt.Errorf("store: unknown backend %q", opts.Backend)
	}
}
