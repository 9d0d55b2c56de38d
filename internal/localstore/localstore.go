// Package localstore is a small file-backed key store for demo-mode state.
// Each key maps to one JSON blob on disk. There are exactly two keys in use
// (the demo identity marker and the demo destination array) and both are
// wiped together on logout — partial clearing is not supported.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Keys for the two demo-mode blobs. The names mirror the browser-era storage
// keys so existing exports stay readable.
const (
	KeyIdentity     = "travel-app-user"
	KeyDestinations = "demo-destinations"
)

// Store reads and writes JSON blobs under a single directory.
// The zero value is not usable; construct with New.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("localstore.New: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get unmarshals the blob stored under key into v.
// Returns false with a nil error when the key has never been written.
func (s *Store) Get(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("localstore.Get %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("localstore.Get %q: decode: %w", key, err)
	}
	return true, nil
}

// Put marshals v and stores it under key, replacing any previous blob.
// The write is atomic: a temp file is renamed into place, so a crash can
// never leave a half-written blob behind.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore.Put %q: encode: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("localstore.Put %q: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore.Put %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore.Put %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore.Put %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob stored under key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localstore.Delete %q: %w", key, err)
	}
	return nil
}

// Wipe removes every blob in the store. Used on demo logout, where the
// identity marker and the destination array must go together.
func (s *Store) Wipe() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("localstore.Wipe: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("localstore.Wipe: %w", err)
		}
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
