// Package storage provides the file access used to load and write item
// configs.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when a path does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines the storage adapter interface.
type Storage interface {
	// Read reads contents from a path.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write writes contents to a path, creating parent directories.
	Write(ctx context.Context, path string, content []byte) error

	// Delete deletes a file at path.
	Delete(ctx context.Context, path string) error

	// Exists checks if a path exists.
	Exists(ctx context.Context, path string) (bool, error)

	// IsDir reports whether path is an existing directory.
	IsDir(ctx context.Context, path string) (bool, error)

	// IsEmpty reports whether path is an empty directory or an empty file.
	IsEmpty(ctx context.Context, path string) (bool, error)

	// List returns every regular file below dir, relative to dir, using
	// forward slashes, in lexical order.
	List(ctx context.Context, dir string) ([]string, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(ctx context.Context, path string) error
}

// Type represents the type of storage.
type Type string

const (
	// TypeFilesystem is backed by the operating system.
	TypeFilesystem Type = "filesystem"

	// TypeMemory is backed by an in-memory filesystem.
	TypeMemory Type = "memory"
)

// Config holds storage configuration.
type Config struct {
	Type Type

	// BasePath is the directory relative paths are resolved against.
	BasePath string

	// Fs, when set, backs the storage instead of the filesystem Type selects.
	Fs afero.Fs
}

// New creates a storage adapter based on configuration.
func New(config *Config) (Storage, error) {
	if config == nil {
		config = &Config{Type: TypeFilesystem}
	}

	if config.Fs != nil {
		return NewFromFs(config.Fs, config.BasePath), nil
	}

	switch config.Type {
	case TypeFilesystem, "":
		base := config.BasePath
		if base == "" {
			base = "."
		}
		return NewFilesystem(base), nil

	case TypeMemory:
		return NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.Type)
	}
}
