package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploads under a fixed directory keyed by the original
// filename. Last write wins on a name collision.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	name := filepath.Base(originalFilename)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return "/images/uploads/" + name, nil
}
