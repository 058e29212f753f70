package domain

import "time"

// Event is an outbound notification emitted after a todo mutation commits.
// Delivery is at-most-once; a dropped or failed event is log-only and never
// affects the committed mutation.
type Event struct {
	Name    string
	OwnerID int
	TodoID  int
	At      time.Time
}

const (
	EventTodoCreated = "todo.created"
	EventTodoDeleted = "todo.deleted"
)
