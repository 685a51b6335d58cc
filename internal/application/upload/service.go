package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	// MaxImageBytes caps uploaded part images at 8 MiB.
	MaxImageBytes = 8 << 20

	// ReferencePrefix marks stored uploads in label image references.
	ReferencePrefix = "uploads/"
)

// extensionByContentType lists the accepted image content types and the
// file extension each one stores under.
var extensionByContentType = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ObjectStorage abstracts the backend that holds uploaded part images
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// Service handles part image uploads
type Service struct {
	storage ObjectStorage
	logger  *zap.Logger
	newKey  func() string
}

// NewService creates a new upload Service
func NewService(storage ObjectStorage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage: storage,
		logger:  logger,
		newKey:  func() string { return uuid.New().String() },
	}
}

// UploadImage validates and stores a part image, returning the reference
// to put on a label.
func (s *Service) UploadImage(ctx context.Context, req UploadImageRequest) (*UploadImageResponse, error) {
	if len(req.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Image data is empty")
	}
	if len(req.Data) > MaxImageBytes {
		return nil, shared.NewDomainError("IMAGE_TOO_LARGE",
			fmt.Sprintf("Image exceeds the %d byte limit", MaxImageBytes))
	}

	contentType := normalizeContentType(req.ContentType)
	if contentType == "" {
		contentType = http.DetectContentType(req.Data)
	}
	ext, ok := extensionByContentType[contentType]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE",
			"Unsupported image type: "+contentType)
	}

	key := s.newKey() + ext
	if err := s.storage.Put(ctx, key, req.Data, contentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Info("part image uploaded",
		zap.String("key", key),
		zap.String("contentType", contentType),
		zap.Int("size", len(req.Data)),
		zap.String("fileName", req.FileName))

	return &UploadImageResponse{
		Reference:   ReferencePrefix + key,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(req.Data)),
	}, nil
}

// GetImage opens a stored image by key or by its full reference
func (s *Service) GetImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), ReferencePrefix)
	if key == "" {
		return nil, "", shared.NewDomainError("INVALID_INPUT", "Image key is required")
	}
	return s.storage.Open(ctx, key)
}

// DeleteImage removes a stored image by key or by its full reference
func (s *Service) DeleteImage(ctx context.Context, key string) error {
	key = strings.TrimPrefix(strings.TrimSpace(key), ReferencePrefix)
	if key == "" {
		return shared.NewDomainError("INVALID_INPUT", "Image key is required")
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// normalizeContentType strips parameters like "; charset=utf-8"
func normalizeContentType(ct string) string {
	ct = strings.TrimSpace(strings.ToLower(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	return ct
}
