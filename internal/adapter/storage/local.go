// Package storage provides the attachment blob backends. A deployment runs
// exactly one of them: the local filesystem store when an upload directory is
// configured, otherwise the disabled store.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating upload dir: %v", domain.ErrStorageError, err)
	}

	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Put(ctx context.Context, ref string, content io.Reader) error {
	path, err := s.pathFor(ref)

	if err != nil {
		return err
	}

	file, err := os.Create(path)

	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageError, err)
	}

	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("%w: %v", domain.ErrStorageError, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: %v", domain.ErrStorageError, err)
	}

	return nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	path, err := s.pathFor(ref)

	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}

		return fmt.Errorf("%w: %v", domain.ErrStorageError, err)
	}

	return nil
}

// pathFor rejects references that would escape the upload directory.
func (s *LocalStore) pathFor(ref string) (string, error) {
	if ref == "" || filepath.Base(ref) != ref {
		return "", fmt.Errorf("%w: invalid reference %q", domain.ErrStorageError, ref)
	}

	return filepath.Join(s.dir, ref), nil
}

var _ port.BlobStore = (*LocalStore)(nil)
