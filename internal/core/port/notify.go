package port

import "todolist/internal/core/domain"

// EventPublisher accepts post-commit events. Publish never blocks the
// request path and gives no delivery guarantee beyond at-most-once.
type EventPublisher interface {
	Publish(event domain.Event)
}
