package fsx

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotExist is returned by readers when the object is missing
var ErrNotExist = errors.New("fsx: file does not exist")

// ErrNotSupported is returned by backends that cannot honor an operation
var ErrNotSupported = errors.New("fsx: operation not supported by backend")

// FileReader reads stored objects
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileWriter writes and removes stored objects
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	// DeleteFile removes path. Deleting a missing object is not an error.
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is the object storage port used for uploaded files
type FileSystem interface {
	FileReader
	FileWriter

	Join(parts ...string) string
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns a URL clients can use to download path
	URL(ctx context.Context, path string) (string, error)

	// PresignUpload returns a URL that accepts a single PUT of path for ttl
	PresignUpload(ctx context.Context, path string, contentType string, ttl time.Duration) (string, error)
}
