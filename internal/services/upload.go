package services

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/internal/storage"
)

// MaxImageSize is the largest accepted image upload.
const MaxImageSize = 5 << 20

const imagePrefix = "images/"

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadedImage describes a stored image.
type UploadedImage struct {
	Key         string
	Filename    string
	ContentType string
	Size        int64
}

// UploadService stores admin image uploads in object storage.
type UploadService struct {
	storage *storage.Storage
}

func NewUploadService(storage *storage.Storage) *UploadService {
	return &UploadService{storage: storage}
}

// StoreImage checks the content type from the bytes themselves and stores the
// image under a generated name.
func (s *UploadService) StoreImage(ctx context.Context, data []byte) (UploadedImage, error) {
	if len(data) == 0 {
		return UploadedImage{}, invalid("file", "file is empty")
	}
	if len(data) > MaxImageSize {
		return UploadedImage{}, invalid("file", "file exceeds 5MB")
	}

	contentType := mimetype.Detect(data).String()
	ext, ok := imageTypes[contentType]
	if !ok {
		return UploadedImage{}, invalid("file", "only JPEG, PNG, GIF and WEBP images are allowed")
	}

	filename := uuid.NewString() + ext
	key := imagePrefix + filename
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return UploadedImage{}, err
	}

	return UploadedImage{
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// Open returns a stored object and its content type.
func (s *UploadService) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	rc, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return rc, contentTypeForKey(key), nil
}

func contentTypeForKey(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	for contentType, known := range imageTypes {
		if known == ext {
			return contentType
		}
	}
	return "application/octet-stream"
}
