package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// ImageOptions controls how uploads are normalised before storage
type ImageOptions struct {
	// MaxWidth downsizes wider raster images, keeping aspect ratio. 0 disables.
	MaxWidth int
	// WebP re-encodes jpeg/png/webp uploads as lossy webp
	WebP    bool
	Quality float32
}

// ProcessedImage is an upload ready to store
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

var allowedTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/bmp":     true,
	"image/svg+xml": true,
	"image/avif":    true,
}

// DetectType sniffs the content and rejects anything that is not an image
func DetectType(data []byte) (*mimetype.MIME, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnsupportedType)
	}
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if allowedTypes[m.String()] {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

func decode(data []byte, contentType string) (image.Image, error) {
	if contentType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

// ProcessImage validates an upload and downsizes or re-encodes it when configured
func ProcessImage(data []byte, opts ImageOptions) (*ProcessedImage, error) {
	mt, err := DetectType(data)
	if err != nil {
		return nil, err
	}

	out := &ProcessedImage{
		Data:        data,
		ContentType: mt.String(),
		Ext:         mt.Extension(),
	}

	switch out.ContentType {
	case "image/svg+xml", "image/avif":
		// stored untouched, dimensions unknown
		return out, nil
	case "image/gif":
		// keep animation frames, only read dimensions
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err == nil {
			out.Width, out.Height = cfg.Width, cfg.Height
		}
		return out, nil
	}

	img, err := decode(data, out.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := false
	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
		resized = true
	}
	out.Width, out.Height = img.Bounds().Dx(), img.Bounds().Dy()

	quality := opts.Quality
	if quality <= 0 {
		quality = 85
	}

	var buf bytes.Buffer
	switch {
	case opts.WebP || (resized && out.ContentType == "image/webp"):
		if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode webp: %w", err)
		}
		out.ContentType, out.Ext = "image/webp", ".webp"
	case resized && out.ContentType == "image/png":
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, err
		}
	case resized:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(int(quality))); err != nil {
			return nil, err
		}
		out.ContentType, out.Ext = "image/jpeg", ".jpg"
	default:
		return out, nil
	}

	out.Data = buf.Bytes()
	return out, nil
}
