package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage publishes tracks by copying them below a root directory,
// e.g. a mounted music library.
type LocalStorage struct {
	root string
}

// Verify interface implementation at compile time.
var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance.
// The root directory is created if it doesn't exist.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("create local storage: root directory is empty")
	}

	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("create root directory: %w", err)
	}

	return &LocalStorage{root: root}, nil
}

// Root returns the publish directory.
func (s *LocalStorage) Root() string {
	return s.root
}

// Publish copies the track at localPath to root/key and returns the
// destination path. An existing destination is replaced.
func (s *LocalStorage) Publish(ctx context.Context, key, localPath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if key == "" {
		return "", ErrEmptyKey
	}

	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}

	src, err := os.Open(localPath) // #nosec G304 - path is a track written by this process
	if err != nil {
		return "", fmt.Errorf("open track: %w", err)
	}
	defer func() { _ = src.Close() }()

	// Write to a temp file first so a failed copy never leaves a
	// truncated track at dst.
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+"_*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("copy track: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("move track into place: %w", err)
	}

	return dst, nil
}
