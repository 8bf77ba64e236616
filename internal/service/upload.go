package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fleetdocs/internal/config"
	"fleetdocs/internal/storage"
)

var (
	ErrReaderNil       = errors.New("reader is nil")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// presignExpiry bounds how long a generated download link stays usable.
const presignExpiry = 15 * time.Minute

// allowedContentTypes are the document formats accepted for upload.
var allowedContentTypes = map[string]struct{}{
	"application/pdf":    {},
	"image/jpeg":         {},
	"image/jpg":          {},
	"image/png":          {},
	"image/gif":          {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// UploadResult describes a stored file. FileURL is the opaque reference the
// caller saves on a document; the core never interprets it.
type UploadResult struct {
	FileURL      string `json:"fileUrl"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	ContentType  string `json:"mimetype"`
}

// UploadService stores document files in object storage. Files are opaque
// blobs: no parsing, no content inspection beyond the declared content type.
type UploadService interface {
	// Upload streams the content to object storage under a generated name
	// and returns the opaque reference for it.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*UploadResult, error)

	// PresignURL returns a time-limited download URL for a stored file key.
	PresignURL(ctx context.Context, key string) (string, error)
}

type uploadService struct {
	store storage.Storage
	cfg   config.UploadConfig
}

// NewUploadService constructs a new UploadService.
func NewUploadService(store storage.Storage, cfg config.UploadConfig) UploadService {
	return &uploadService{store: store, cfg: cfg}
}

func (s *uploadService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*UploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, ErrUnsupportedType
	}
	if s.cfg.MaxSizeBytes > 0 && size > s.cfg.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	// Generate filename using UUID + extension
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("uploads", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	return &UploadResult{
		FileURL:      "/" + objInfo.Key,
		Filename:     genName,
		OriginalName: originalFilename,
		Size:         objInfo.Size,
		ContentType:  contentType,
	}, nil
}

// PresignURL maps a stored key to a short-lived download URL.
func (s *uploadService) PresignURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrIDRequired
	}
	return s.store.PresignGet(ctx, key, presignExpiry)
}
