package storage

import (
	"context"
	"io"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

// DisabledStore stands in when no backend is configured. Uploads fail loudly
// with StorageUnavailable instead of silently dropping the attachment; the
// caller decides whether that is fatal to the enclosing use case.
type DisabledStore struct{}

func NewDisabledStore() *DisabledStore {
	return &DisabledStore{}
}

func (*DisabledStore) Put(ctx context.Context, ref string, content io.Reader) error {
	return domain.ErrStorageUnavailable
}

func (*DisabledStore) Delete(ctx context.Context, ref string) error {
	return domain.ErrStorageUnavailable
}

var _ port.BlobStore = (*DisabledStore)(nil)
