package storage

import (
	"context"
	"io"
	"time"
)

// Provider abstracts the media backends. Local holds every original upload;
// cloud is used for plan tiers that allow it.
type Provider interface {
	// Save streams the file body to the backend and returns the stored key.
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error

	// GeneratePresignedDownloadURL returns a time-limited playback URL.
	// Local backends return a path relative to the media base URL.
	GeneratePresignedDownloadURL(ctx context.Context, key string, lifetime time.Duration) (string, error)

	GetObjectSize(ctx context.Context, key string) (int64, error)
}
