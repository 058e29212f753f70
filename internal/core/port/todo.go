package port

import (
	"context"
	"io"
	"time"

	"todolist/internal/core/domain"
)

type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByDueDate   SortKey = "due_date"
	SortByPriority  SortKey = "priority"
)

// TodoFilter narrows a listing. Nil members are "no filter".
type TodoFilter struct {
	Status   *domain.TodoStatus
	Priority *domain.TodoPriority
	// Search matches title or description, case-insensitive substring.
	Search string
}

type TodoSort struct {
	Key  SortKey
	Desc bool
}

type TodoPage struct {
	Skip  int
	Limit int
}

// TodoPatch carries a partial update. Nil fields keep their stored values.
type TodoPatch struct {
	Title       *string
	Description *string
	Status      *domain.TodoStatus
	Priority    *domain.TodoPriority
	DueDate     *time.Time
}

func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil
}

type TodoRepository interface {
	List(ctx context.Context, ownerID int, filter TodoFilter, sort TodoSort, page TodoPage) ([]domain.Todo, error)
	// GetByID scopes by (id, ownerID); a foreign owner's todo reads as not found.
	GetByID(ctx context.Context, id, ownerID int) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, id, ownerID int, patch TodoPatch) (domain.Todo, error)
	// Delete returns the removed row so callers can reclaim its attachment.
	Delete(ctx context.Context, id, ownerID int) (domain.Todo, error)
}

type CreateTodoInput struct {
	Title       string
	Description string
	Status      domain.TodoStatus
	Priority    domain.TodoPriority
	DueDate     *time.Time
}

// Upload is an attachment supplied with a create request.
type Upload struct {
	Content     io.Reader
	ContentType string
}

type ListOptions struct {
	Status   string
	Priority int
	Search   string
	SortBy   string
	Order    string
	Skip     int
	Limit    int
}

type TodoService interface {
	List(ctx context.Context, ownerID int, opts ListOptions) ([]domain.Todo, error)
	Get(ctx context.Context, ownerID, id int) (domain.Todo, error)
	Create(ctx context.Context, ownerID int, input CreateTodoInput, upload *Upload) (domain.Todo, error)
	Update(ctx context.Context, ownerID, id int, patch TodoPatch) (domain.Todo, error)
	Delete(ctx context.Context, ownerID, id int) error
}
