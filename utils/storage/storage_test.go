package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerateKey(t *testing.T) {
	now := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	key := GenerateKey("/assets/", "PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^assets/2026/03/[0-9a-f-]{36}\.png$`), key)
	assert.NotEqual(t, key, GenerateKey("assets", ".png", now))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentTypeFor("https://cdn.test/a/photo.JPG?w=200"))
	assert.Equal(t, "image/webp", ContentTypeFor("poster.webp"))
	assert.Equal(t, "", ContentTypeFor("https://cdn.test/a/photo"))
}

func TestLocalStoragePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(filepath.Join(dir, "uploads"), "/uploads/")
	require.NoError(t, err)

	url, err := ls.Put(context.Background(), "assets/2026/01/a.png", []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/assets/2026/01/a.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "assets", "2026", "01", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)

	require.NoError(t, ls.Delete(context.Background(), "assets/2026/01/a.png"))
	require.NoError(t, ls.Delete(context.Background(), "assets/2026/01/a.png"))
}

func TestLocalStorageKeepsKeysInsideBase(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	_, err = ls.Put(context.Background(), "../../escape.png", []byte("x"), "image/png")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessImageDownscales(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 40, 20), ImageOptions{MaxWidth: 10})
	require.NoError(t, err)

	assert.Equal(t, "image/png", out.ContentType)
	assert.Equal(t, ".png", out.Ext)
	assert.Equal(t, 10, out.Width)
	assert.Equal(t, 5, out.Height)

	decoded, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 10, decoded.Bounds().Dx())
}

func TestProcessImageKeepsSmallImagesUntouched(t *testing.T) {
	original := pngBytes(t, 8, 8)
	out, err := ProcessImage(original, ImageOptions{MaxWidth: 100})
	require.NoError(t, err)
	assert.Equal(t, original, out.Data)
	assert.Equal(t, 8, out.Width)
}

func TestProcessImageWebP(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 16, 16), ImageOptions{WebP: true})
	require.NoError(t, err)
	assert.Equal(t, "image/webp", out.ContentType)
	assert.Equal(t, ".webp", out.Ext)
	assert.Equal(t, "RIFF", string(out.Data[:4]))
}

func TestProcessImageRejectsNonImages(t *testing.T) {
	_, err := ProcessImage([]byte("%PDF-1.4 not an image"), ImageOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ProcessImage(nil, ImageOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
