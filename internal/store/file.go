package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps the blob in a single file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend rooted at path. Nothing is touched on disk
// until the first Put.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the blob file location.
func (f *FileBackend) Path() string { return f.path }

func (f *FileBackend) Get() ([]byte, error) {
	//nolint:gosec // data path is configured by the local user
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return data, nil
}

// Put writes to a temp file and renames it over the blob so a crash never
// leaves a half-written budget behind.
func (f *FileBackend) Put(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".budget-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

func (f *FileBackend) Close() error { return nil }
