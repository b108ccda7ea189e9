package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements Store using one file per key on the local filesystem.
// This is the default implementation for development and single-node
// deployments.
type LocalStore struct {
	basePath string // Root directory for snapshot files (e.g., "./data/snapshots")
}

// NewLocalStore creates a filesystem-backed snapshot store.
// basePath is created if it doesn't exist.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &LocalStore{basePath: basePath}, nil
}

// Read retrieves the snapshot stored under key.
func (s *LocalStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return data, nil
}

// Write stores data under key. The snapshot is written to a temporary file
// and renamed into place so a crash mid-write never leaves a truncated
// snapshot behind.
func (s *LocalStore) Write(ctx context.Context, key string, data []byte) error {
	fullPath := s.path(key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tmp, fullPath); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}

// Delete removes the snapshot under key.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(key))
}
