package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/labelgen/backend/internal/application/upload"
	"github.com/labelgen/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Ensure FileSystemObjectStorage implements the upload port
var _ upload.ObjectStorage = (*FileSystemObjectStorage)(nil)

// FileSystemObjectStorage stores uploads on the local disk. This is the
// default backend for single-machine installs.
type FileSystemObjectStorage struct {
	basePath string
	logger   *zap.Logger
}

// NewFileSystemObjectStorage creates the storage root if needed
func NewFileSystemObjectStorage(basePath string, logger *zap.Logger) (*FileSystemObjectStorage, error) {
	if basePath == "" {
		return nil, errors.New("storage path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSystemObjectStorage{basePath: basePath, logger: logger}, nil
}

// Put stores an object under the given key
func (s *FileSystemObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	s.logger.Debug("object stored", zap.String("key", key), zap.Int("size", len(data)))
	return nil
}

// Open returns a reader for the object. The content type is derived from
// the key's extension since the filesystem keeps no metadata.
func (s *FileSystemObjectStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", shared.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open object: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return file, contentType, nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (s *FileSystemObjectStorage) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// resolve maps a key to an on-disk path, rejecting anything that could
// escape the storage root.
func (s *FileSystemObjectStorage) resolve(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage key is required")
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.basePath, key), nil
}
