package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilchouksey/institute-site/utils/logger"
)

// LocalStorage handles saving files to the local filesystem
type LocalStorage struct {
	basePath string // root directory, served under baseURL
	baseURL  string
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath returns the directory files are written to
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

func (ls *LocalStorage) fullPath(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(clean)), nil
}

// Put writes data under key and returns its URL
func (ls *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst, err := ls.fullPath(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dst).Msg("failed to write upload")
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return ls.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/"), nil
}

// Delete removes the file stored under key. Missing files are not an error.
func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	dst, err := ls.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
