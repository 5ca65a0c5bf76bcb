package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage"
)

const providerName = "local"

// Store keeps objects as files under a root directory. It is meant for
// development and tests; keys map to slash-separated relative paths.
type Store struct {
	root string
}

// New creates a local store rooted at root, creating the directory if needed
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: missing root directory", storage.ErrInvalidConfig)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Store{root: root}, nil
}

func (s *Store) Name() string { return providerName }

func (s *Store) fullPath(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || hasParentSegment(key) {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func hasParentSegment(key string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(key), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// Put writes body to a temp file and renames it into place, so readers never
// see a partial object
func (s *Store) Put(ctx context.Context, key string, body io.Reader, opts storage.PutOptions) error {
	if err := ctx.Err(); err != nil {
		return storage.WrapError(providerName, "put", storage.Classify(err))
	}

	dest, err := s.fullPath(key)
	if err != nil {
		return storage.WrapError(providerName, "put", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return storage.WrapError(providerName, "put", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return storage.WrapError(providerName, "put", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return storage.WrapError(providerName, "put", err)
	}
	if err := tmp.Close(); err != nil {
		return storage.WrapError(providerName, "put", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return storage.WrapError(providerName, "put", err)
	}
	return nil
}

// Head returns metadata about a stored file
func (s *Store) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	full, err := s.fullPath(key)
	if err != nil {
		return nil, storage.WrapError(providerName, "head", err)
	}

	info, err := os.Stat(full)
	if err != nil {
		return nil, storage.WrapError(providerName, "head", mapError(err))
	}
	if info.IsDir() {
		return nil, storage.WrapError(providerName, "head", storage.ErrNotFound)
	}

	return &storage.ObjectInfo{
		Key:          key,
		Size:         info.Size(),
		ContentType:  mime.TypeByExtension(path.Ext(key)),
		LastModified: info.ModTime(),
	}, nil
}

// Get opens a stored file
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	full, err := s.fullPath(key)
	if err != nil {
		return nil, storage.WrapError(providerName, "get", err)
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, storage.WrapError(providerName, "get", mapError(err))
	}
	return f, nil
}

// Delete removes a stored file; missing files are fine
func (s *Store) Delete(ctx context.Context, key string) error {
	full, err := s.fullPath(key)
	if err != nil {
		return storage.WrapError(providerName, "delete", err)
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storage.WrapError(providerName, "delete", mapError(err))
	}
	return nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return storage.Tag(storage.ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return storage.Tag(storage.ErrAccessDenied, err)
	}
	return err
}
