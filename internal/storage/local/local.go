// Package local stores uploaded originals on the local filesystem, the
// default for single-node deployments without object storage.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"medscribe/internal/port"
)

type localStorage struct {
	dir string
}

// NewStorage creates a disk-backed ObjectStorage rooted at dir.
func NewStorage(dir string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) path(key string) (string, error) {
	// keys are opaque but must stay inside the storage root
	cleaned := filepath.Clean(filepath.Join(s.dir, key))
	if !strings.HasPrefix(cleaned, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return cleaned, nil
}

func (s *localStorage) Upload(_ context.Context, key, _ string, body io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("local upload: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("local upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("local upload: %w", err)
	}
	return nil
}

func (s *localStorage) Download(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("local download: %w", err)
	}
	return data, nil
}

func (s *localStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}
