// Package localfs is the blob store. Keys may contain slashes (the upload
// saga prefixes them with the owner id), so parent directories are created
// on demand.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/storage"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Save(_ context.Context, key string, data io.Reader) error {
	path := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.WrapError(domain.ErrStorage, "create blob dir", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "create blob file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return domain.WrapError(domain.ErrStorage, "write blob file", err)
	}
	return nil
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "open blob file", err)
	}
	return f, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	if err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key))); err != nil {
		return domain.WrapError(domain.ErrStorage, "delete blob file", err)
	}
	return nil
}
