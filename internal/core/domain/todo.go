package domain

import (
	"fmt"
	"time"
)

type TodoStatus string

const (
	StatusNotStarted TodoStatus = "not_started"
	StatusInProgress TodoStatus = "in_progress"
	StatusDone       TodoStatus = "done"
)

func ParseStatus(s string) (TodoStatus, error) {
	switch TodoStatus(s) {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return TodoStatus(s), nil
	default:
		return "", fmt.Errorf("invalid status: %s", s)
	}
}

type TodoPriority int

const (
	PriorityLow    TodoPriority = 1
	PriorityMedium TodoPriority = 2
	PriorityHigh   TodoPriority = 3
)

func ParsePriority(p int) (TodoPriority, error) {
	switch TodoPriority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return TodoPriority(p), nil
	default:
		return 0, fmt.Errorf("invalid priority: %d", p)
	}
}

type Todo struct {
	ID          int
	Title       string `validate:"required,min=1,max=100"`
	Description string `validate:"max=500"`
	Status      TodoStatus
	Priority    TodoPriority
	DueDate     *time.Time
	// ImageRef is the opaque attachment reference persisted on the row.
	// Empty means no attachment. The presentation layer derives a fetchable
	// URL from it.
	ImageRef  string
	OwnerID   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Todo) HasAttachment() bool {
	return t.ImageRef != ""
}
