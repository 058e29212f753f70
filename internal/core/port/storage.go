package port

import (
	"context"
	"io"
)

// BlobStore is the physical backend behind the attachment manager: a local
// directory or a remote object store. Exactly one backend is active per
// deployment.
type BlobStore interface {
	Put(ctx context.Context, ref string, content io.Reader) error
	// Delete is idempotent; deleting a missing ref returns domain.ErrNotFound
	// and must not be treated as a failure by callers.
	Delete(ctx context.Context, ref string) error
}
