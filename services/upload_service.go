package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahilchouksey/institute-site/utils/storage"
)

// UploadResult describes a stored upload
type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// UploadService normalises images and writes them to the configured object store
type UploadService struct {
	store   storage.ObjectStore
	options storage.ImageOptions
	now     func() time.Time
}

// NewUploadService creates a new upload service
func NewUploadService(store storage.ObjectStore, options storage.ImageOptions) *UploadService {
	return &UploadService{
		store:   store,
		options: options,
		now:     time.Now,
	}
}

// Upload stores data under folder and returns where it is served from.
// Non-image content fails with storage.ErrUnsupportedType.
func (s *UploadService) Upload(ctx context.Context, folder string, data []byte) (*UploadResult, error) {
	img, err := storage.ProcessImage(data, s.options)
	if err != nil {
		return nil, err
	}

	key := storage.GenerateKey(sanitizeFolder(folder), img.Ext, s.now())
	url, err := s.store.Put(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		MimeType: img.ContentType,
		Size:     int64(len(img.Data)),
		Width:    img.Width,
		Height:   img.Height,
	}, nil
}

// sanitizeFolder keeps folder names to lowercase letters, digits and dashes
func sanitizeFolder(folder string) string {
	folder = strings.ToLower(strings.TrimSpace(folder))
	var b strings.Builder
	for _, r := range folder {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '_' || r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "assets"
	}
	return b.String()
}
