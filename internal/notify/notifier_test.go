package notify

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"todolist/internal/core/domain"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLogNotifierPublishesEvents(t *testing.T) {
	RegisterTestingT(t)

	out := &syncBuffer{}
	notifier := NewLogNotifier(zerolog.New(out))

	notifier.Publish(domain.Event{
		Name:    domain.EventTodoCreated,
		OwnerID: 7,
		TodoID:  42,
		At:      time.Now(),
	})

	notifier.Close()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")

	Expect(lines).To(HaveLen(1))

	var entry map[string]any
	Expect(json.Unmarshal([]byte(lines[0]), &entry)).To(Succeed())

	Expect(entry["event"]).To(Equal(domain.EventTodoCreated))
	Expect(entry["todo_id"]).To(BeNumerically("==", 42))
	Expect(entry["owner_id"]).To(BeNumerically("==", 7))
}

func TestLogNotifierPublishNeverBlocks(t *testing.T) {
	RegisterTestingT(t)

	notifier := NewLogNotifier(zerolog.Nop())

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; i < 10000; i++ {
			notifier.Publish(domain.Event{Name: domain.EventTodoCreated, TodoID: i})
		}
	}()

	Eventually(done, time.Second).Should(BeClosed())

	notifier.Close()
}

func TestLogNotifierCloseIsIdempotent(t *testing.T) {
	RegisterTestingT(t)

	notifier := NewLogNotifier(zerolog.Nop())

	notifier.Close()
	notifier.Close()

	// Publishing after close must not panic; the event is dropped.
	notifier.Publish(domain.Event{Name: domain.EventTodoDeleted})
}
