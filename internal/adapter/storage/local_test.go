package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"todolist/internal/core/domain"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	RegisterTestingT(t)

	dir := t.TempDir()

	store, err := NewLocalStore(dir)

	Expect(err).NotTo(HaveOccurred())

	err = store.Put(context.Background(), "todo_1_abc.png", strings.NewReader("bytes"))

	Expect(err).NotTo(HaveOccurred())

	contents, err := os.ReadFile(filepath.Join(dir, "todo_1_abc.png"))

	Expect(err).NotTo(HaveOccurred())
	Expect(string(contents)).To(Equal("bytes"))

	Expect(store.Delete(context.Background(), "todo_1_abc.png")).To(Succeed())

	err = store.Delete(context.Background(), "todo_1_abc.png")

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func TestLocalStoreRejectsPathTraversal(t *testing.T) {
	RegisterTestingT(t)

	store, err := NewLocalStore(t.TempDir())

	Expect(err).NotTo(HaveOccurred())

	err = store.Put(context.Background(), "../escape.png", strings.NewReader("bytes"))

	Expect(err).To(HaveOccurred())
}

func TestDisabledStore(t *testing.T) {
	RegisterTestingT(t)

	store := NewDisabledStore()

	err := store.Put(context.Background(), "todo_1_abc.png", strings.NewReader("bytes"))

	Expect(err).To(MatchError(domain.ErrStorageUnavailable))

	err = store.Delete(context.Background(), "todo_1_abc.png")

	Expect(err).To(MatchError(domain.ErrStorageUnavailable))
}

func TestDisplayURL(t *testing.T) {
	RegisterTestingT(t)

	Expect(DisplayURL("/static/images/", "todo_1_abc.png")).To(Equal("/static/images/todo_1_abc.png"))
	Expect(DisplayURL("/static/images", "todo_1_abc.png")).To(Equal("/static/images/todo_1_abc.png"))
	Expect(DisplayURL("", "todo_1_abc.png")).To(Equal(""))
	Expect(DisplayURL("/static/images/", "")).To(Equal(""))
}
