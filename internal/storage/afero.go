package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoStorage implements Storage on top of an afero filesystem.
type AferoStorage struct {
	fs       afero.Fs
	basePath string
}

// NewFilesystem creates a storage adapter on the local filesystem.
func NewFilesystem(basePath string) *AferoStorage {
	return &AferoStorage{fs: afero.NewOsFs(), basePath: basePath}
}

// NewMemory creates an in-memory storage adapter.
func NewMemory() *AferoStorage {
	return &AferoStorage{fs: afero.NewMemMapFs()}
}

// NewFromFs wraps an existing afero filesystem.
func NewFromFs(fsys afero.Fs, basePath string) *AferoStorage {
	return &AferoStorage{fs: fsys, basePath: basePath}
}

func (s *AferoStorage) resolve(path string) string {
	if filepath.IsAbs(path) || s.basePath == "" {
		return path
	}
	return filepath.Join(s.basePath, path)
}

func (s *AferoStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := afero.ReadFile(s.fs, s.resolve(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

func (s *AferoStorage) Write(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full := s.resolve(path)
	if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, full, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *AferoStorage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.Remove(s.resolve(path)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *AferoStorage) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return afero.Exists(s.fs, s.resolve(path))
}

func (s *AferoStorage) IsDir(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ok, err := afero.IsDir(s.fs, s.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return ok, err
}

func (s *AferoStorage) IsEmpty(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	full := s.resolve(path)
	if ok, err := afero.Exists(s.fs, full); err != nil || !ok {
		return !ok, err
	}
	return afero.IsEmpty(s.fs, full)
}

func (s *AferoStorage) List(ctx context.Context, dir string) ([]string, error) {
	root := s.resolve(dir)

	var files []string
	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return files, nil
}

func (s *AferoStorage) MkdirAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fs.MkdirAll(s.resolve(path), 0o755)
}
