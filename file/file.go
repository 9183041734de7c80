// Package file stores flow slots as files in a directory, one file per key.
package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meikuraledutech/flow"
)

// Store implements flow.Store on the local filesystem.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get returns nil, nil if the key has never been written.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file: read %s: %w", key, err)
	}
	return b, nil
}

// Put writes to a temp file and renames it over the slot, so readers never
// observe a half-written snapshot.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("file: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("file: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("file: rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot file. No error if it doesn't exist.
func (s *Store) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file: delete %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file name. Keys are hashed so any string is a safe name.
func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

var _ flow.Store = (*Store)(nil)
