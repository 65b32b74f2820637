package fsxlocal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/fsx"
)

// LocalFileSystem stores objects under a root directory on disk.
// It is used for development and the memory store driver.
type LocalFileSystem struct {
	root    string
	baseURL string
}

// NewLocalFileSystem creates the root directory if needed. baseURL, when set,
// is used to build download URLs (for example http://localhost:8080/files).
func NewLocalFileSystem(root, baseURL string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create local store root %s: %w", root, err)
	}
	return &LocalFileSystem{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (l *LocalFileSystem) Join(parts ...string) string {
	return filepath.ToSlash(filepath.Join(parts...))
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", p, err)
	}
	return os.WriteFile(full, data, 0o644)
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", p, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create %s: %w", p, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fsx.ErrNotExist
	}
	return data, err
}

func (l *LocalFileSystem) DeleteFile(ctx context.Context, p string) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", p, err)
	}
	return nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (l *LocalFileSystem) URL(ctx context.Context, p string) (string, error) {
	clean := strings.TrimLeft(filepath.ToSlash(p), "/")
	if l.baseURL == "" {
		return "file://" + filepath.ToSlash(filepath.Join(l.root, clean)), nil
	}
	return l.baseURL + "/" + (&url.URL{Path: clean}).EscapedPath(), nil
}

// PresignUpload is not available on disk; clients upload through the API instead.
func (l *LocalFileSystem) PresignUpload(ctx context.Context, p string, contentType string, ttl time.Duration) (string, error) {
	return "", fsx.ErrNotSupported
}

// resolve maps p under root and rejects paths escaping it
func (l *LocalFileSystem) resolve(p string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(p))
	full := filepath.Join(l.root, clean)
	if full != l.root && !strings.HasPrefix(full, filepath.Clean(l.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes store root", p)
	}
	return full, nil
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)
