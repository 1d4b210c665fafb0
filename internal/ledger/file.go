package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is the ledger file used when none is configured.
const DefaultPath = "processed_routes.json"

// FileStore keeps the ledger as a JSON array of route ids in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}

	return &FileStore{path: path}
}

// Path returns the ledger file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the ledger file. A missing file is an empty ledger.
func (s *FileStore) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var ids []string
	if err = json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode ledger file %s: %w", s.path, err)
	}

	return ids, nil
}

// Save replaces the ledger file. The content is written to a temporary file in the
// same directory and renamed over the target, so readers never see a partial file.
func (s *FileStore) Save(_ context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if errClose := tmp.Close(); err == nil {
		err = errClose
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary ledger file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}

	return nil
}

// Ping checks that the ledger directory exists.
func (s *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("ledger directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ledger directory unavailable: %s is not a directory", dir)
	}

	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

