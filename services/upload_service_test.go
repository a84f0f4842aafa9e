package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sahilchouksey/institute-site/utils/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestUploadStoresProcessedImage(t *testing.T) {
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	svc := NewUploadService(local, storage.ImageOptions{MaxWidth: 100})
	result, err := svc.Upload(context.Background(), "Faculty Photos", testPNG(t, 400, 200))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "faculty-photos/"))
	assert.Equal(t, "/uploads/"+result.Key, result.URL)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, 100, result.Width)
	assert.Equal(t, 50, result.Height)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(result.Key)))
	require.NoError(t, err)
	assert.Equal(t, result.Size, int64(len(stored)))
}

func TestUploadRejectsNonImages(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = NewUploadService(local, storage.ImageOptions{}).Upload(context.Background(), "", []byte("%PDF-1.7 not an image"))
	assert.True(t, errors.Is(err, storage.ErrUnsupportedType))
}

func TestSanitizeFolder(t *testing.T) {
	assert.Equal(t, "assets", sanitizeFolder(""))
	assert.Equal(t, "assets", sanitizeFolder("../.."))
	assert.Equal(t, "gallery-2026", sanitizeFolder("Gallery_2026"))
}
