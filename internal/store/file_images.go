package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notelock/notelock/internal/logger"
)

// imageFileStore is the local-filesystem implementation of [FileStore].
// Uploaded binaries live flat under a single root directory; the database
// stores paths relative to that root, so the root can move between
// deployments without rewriting rows.
type imageFileStore struct {
	root   string // absolute path to the images directory
	logger *logger.Logger
}

// NewImageFileStore constructs a [FileStore] rooted at dir, creating the
// directory if it does not exist yet.
func NewImageFileStore(dir string, logger *logger.Logger) (FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("file store: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("file store: create root: %w", err)
	}

	logger.Debug().Str("dir", abs).Msg("creating image file store")
	return &imageFileStore{
		root:   abs,
		logger: logger,
	}, nil
}

// safePath resolves a relative path against the store root and rejects any
// result that escapes it (directory traversal).
func (s *imageFileStore) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if cleaned == "" || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("file store: invalid path: %q", rel)
	}

	abs, err := filepath.Abs(filepath.Join(s.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("file store: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("file store: path escapes store root: %q", rel)
	}

	return abs, nil
}

// Save writes content under name and returns the relative path to persist.
// The write goes through a temporary file and a rename, so a crash mid-write
// never leaves a half-written image behind.
func (s *imageFileStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	log := logger.FromContext(ctx)

	abs, err := s.safePath(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*imageFileStore.Save").Str("name", name).Msg("failed to create temp file")
		return "", fmt.Errorf("file store: create temp: %w", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "*imageFileStore.Save").Str("name", name).Msg("failed to write content")
		return "", fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("file store: close temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), abs); err != nil {
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "*imageFileStore.Save").Str("name", name).Msg("failed to move file into place")
		return "", fmt.Errorf("file store: rename: %w", err)
	}

	return name, nil
}

// Remove deletes a previously saved file. A missing file is not an error:
// the row is the source of truth and the file may already be gone.
func (s *imageFileStore) Remove(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	abs, err := s.safePath(path)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		log.Err(err).Str("func", "*imageFileStore.Remove").Str("path", path).Msg("failed to remove file")
		return fmt.Errorf("file store: remove: %w", err)
	}

	return nil
}
