package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

// AttachmentService validates uploads, mints opaque references, and delegates
// the bytes to whichever blob backend the deployment configured.
type AttachmentService struct {
	store port.BlobStore
}

func NewAttachmentService(store port.BlobStore) *AttachmentService {
	return &AttachmentService{store: store}
}

// Store rejects non-image content before touching the backend. The returned
// reference is what gets persisted on the todo row.
func (s *AttachmentService) Store(ctx context.Context, upload port.Upload, ownerID int) (string, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", domain.ErrUnsupportedMediaType
	}

	ref := fmt.Sprintf("todo_%d_%s%s", ownerID, uuid.New(), extensionFor(upload.ContentType))

	if err := s.store.Put(ctx, ref, upload.Content); err != nil {
		return "", err
	}

	return ref, nil
}

// Remove is idempotent: a missing reference reports domain.ErrNotFound, which
// callers treat as already-reclaimed rather than a failure.
func (s *AttachmentService) Remove(ctx context.Context, ref string) error {
	return s.store.Delete(ctx, ref)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
