// Package notify consumes post-commit todo events. Delivery is at-most-once:
// a full buffer drops the event, and a consumer failure is log-only.
package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

const bufferSize = 64

// LogNotifier drains events on its own goroutine and writes them to the
// structured log. It is the fire-and-forget notification stub behind
// port.EventPublisher.
type LogNotifier struct {
	events chan domain.Event
	logger zerolog.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	n := &LogNotifier{
		events: make(chan domain.Event, bufferSize),
		logger: logger,
		done:   make(chan struct{}),
	}

	go n.run()

	return n
}

// Publish never blocks the request path; when the buffer is full the event is
// dropped and counted as delivered-at-most-once.
func (n *LogNotifier) Publish(event domain.Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}

	select {
	case n.events <- event:
	default:
		n.logger.Debug().Str("event", event.Name).Msg("notification buffer full, event dropped")
	}
}

func (n *LogNotifier) run() {
	defer close(n.done)

	for event := range n.events {
		n.logger.Info().
			Str("event", event.Name).
			Int("owner_id", event.OwnerID).
			Int("todo_id", event.TodoID).
			Time("at", event.At).
			Msg("todo event")
	}
}

// Close stops the consumer after draining buffered events.
func (n *LogNotifier) Close() {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		n.mu.Unlock()

		close(n.events)
		<-n.done
	})
}

var _ port.EventPublisher = (*LogNotifier)(nil)
