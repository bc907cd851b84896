package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalClient stores media on the local filesystem under a root directory.
// It is the default backend; uploads go to cloud storage only on plan tiers
// that allow it.
type LocalClient struct {
	root    string
	baseURL string
}

func NewLocalClient(root, baseURL string) (*LocalClient, error) {
	if root == "" {
		return nil, fmt.Errorf("media root must be set")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &LocalClient{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// path resolves key inside the root and rejects traversal outside it.
func (c *LocalClient) path(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	full := filepath.Join(c.root, cleaned)
	if !strings.HasPrefix(full, c.root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return full, nil
}

func (c *LocalClient) Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	full, err := c.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return key, nil
}

func (c *LocalClient) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	full, err := c.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (c *LocalClient) Delete(ctx context.Context, key string) error {
	full, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GeneratePresignedDownloadURL for local files is just the media URL; the
// HTTP layer enforces access.
func (c *LocalClient) GeneratePresignedDownloadURL(ctx context.Context, key string, lifetime time.Duration) (string, error) {
	return c.baseURL + "/media/" + key, nil
}

func (c *LocalClient) GetObjectSize(ctx context.Context, key string) (int64, error) {
	full, err := c.path(key)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// AbsolutePath exposes the on-disk location for the metadata prober.
func (c *LocalClient) AbsolutePath(key string) (string, error) {
	return c.path(key)
}
