package storage

import (
	"context"
	"errors"
	"io"

	"github.com/HobbyShelf/HS-Backend/internal/config"
)

// MaxUploadSize is the upload ceiling enforced by the object-storage backend.
// The local backend accepts any size.
const MaxUploadSize = 5 << 20 // 5 MiB

var ErrFileTooLarge = errors.New("storage: file exceeds 5 MiB upload limit")

// Store persists an uploaded file and returns the reference string recorded
// on the user row: a local path or an absolute URL.
type Store interface {
	Save(ctx context.Context, originalFilename string, r io.Reader) (string, error)
}

// New picks the backend once at startup from the production flag. Handlers
// hold the returned Store by reference and never re-branch on environment.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.Production {
		return NewS3Store(ctx, cfg.S3Region, cfg.S3Bucket)
	}
	return NewLocalStore(cfg.UploadDir), nil
}
