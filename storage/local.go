package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements Store on the local filesystem, one file per key
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a new local store instance
func NewLocalStore(basePath string) (*LocalStore, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
	}, nil
}

// Get retrieves a value from local storage
func (s *LocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes a value to local storage. The write goes through a temp file
// and rename so a crash mid-write never leaves a truncated value behind.
func (s *LocalStore) Set(ctx context.Context, key, value string) error {
	fullPath := s.pathFor(key)
	tmpPath := fullPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath) // Clean up on error
		return fmt.Errorf("failed to commit key %s: %w", key, err)
	}

	return nil
}

// Remove deletes a key from local storage
func (s *LocalStore) Remove(ctx context.Context, key string) error {
	err := os.Remove(s.pathFor(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}

	return nil
}

// pathFor maps a key to a file path, sanitizing separators
func (s *LocalStore) pathFor(key string) string {
	key = strings.ReplaceAll(key, "/", "_")
	key = strings.ReplaceAll(key, "\\", "_")
	return filepath.Join(s.basePath, key+".json")
}
