package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// TodoService orchestrates the CRUD use cases: repository access, attachment
// handling, and post-commit notifications.
type TodoService struct {
	repo        port.TodoRepository
	attachments *AttachmentService
	events      port.EventPublisher
	logger      zerolog.Logger
}

func NewTodoService(repo port.TodoRepository, attachments *AttachmentService, events port.EventPublisher, logger zerolog.Logger) *TodoService {
	return &TodoService{
		repo:        repo,
		attachments: attachments,
		events:      events,
		logger:      logger,
	}
}

// List normalizes filter and sort arguments before delegating: unrecognized
// values mean "no filter" / default sort, never a rejection.
func (ts *TodoService) List(ctx context.Context, ownerID int, opts port.ListOptions) ([]domain.Todo, error) {
	filter := port.TodoFilter{Search: opts.Search}

	if status, err := domain.ParseStatus(opts.Status); err == nil {
		filter.Status = &status
	}

	if priority, err := domain.ParsePriority(opts.Priority); err == nil {
		filter.Priority = &priority
	}

	sort := port.TodoSort{Key: port.SortByCreatedAt, Desc: true}

	switch port.SortKey(opts.SortBy) {
	case port.SortByCreatedAt, port.SortByDueDate, port.SortByPriority:
		sort.Key = port.SortKey(opts.SortBy)
		sort.Desc = opts.Order != "asc"
	}

	page := port.TodoPage{Skip: opts.Skip, Limit: opts.Limit}

	if page.Skip < 0 {
		page.Skip = 0
	}

	if page.Limit <= 0 {
		page.Limit = defaultListLimit
	}

	if page.Limit > maxListLimit {
		page.Limit = maxListLimit
	}

	return ts.repo.List(ctx, ownerID, filter, sort, page)
}

func (ts *TodoService) Get(ctx context.Context, ownerID, id int) (domain.Todo, error) {
	return ts.repo.GetByID(ctx, id, ownerID)
}

// Create stores the attachment before inserting the row, so a failed upload
// never leaves an orphaned todo behind. Storage failures propagate untouched.
func (ts *TodoService) Create(ctx context.Context, ownerID int, input port.CreateTodoInput, upload *port.Upload) (domain.Todo, error) {
	var imageRef string

	if upload != nil {
		ref, err := ts.attachments.Store(ctx, *upload, ownerID)

		if err != nil {
			return domain.Todo{}, err
		}

		imageRef = ref
	}

	now := time.Now()

	todo := domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		ImageRef:    imageRef,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if todo.Status == "" {
		todo.Status = domain.StatusNotStarted
	}

	if todo.Priority == 0 {
		todo.Priority = domain.PriorityMedium
	}

	saved, err := ts.repo.Create(ctx, todo)

	if err != nil {
		return domain.Todo{}, err
	}

	ts.events.Publish(domain.Event{
		Name:    domain.EventTodoCreated,
		OwnerID: ownerID,
		TodoID:  saved.ID,
		At:      saved.CreatedAt,
	})

	return saved, nil
}

func (ts *TodoService) Update(ctx context.Context, ownerID, id int, patch port.TodoPatch) (domain.Todo, error) {
	return ts.repo.Update(ctx, id, ownerID, patch)
}

// Delete removes the row first; the row's removal is the durable guarantee.
// A failed attachment reclaim afterwards is logged, never escalated into a
// rollback.
func (ts *TodoService) Delete(ctx context.Context, ownerID, id int) error {
	removed, err := ts.repo.Delete(ctx, id, ownerID)

	if err != nil {
		return err
	}

	if removed.HasAttachment() {
		switch err := ts.attachments.Remove(ctx, removed.ImageRef); {
		case err == nil:
		case errors.Is(err, domain.ErrNotFound):
			ts.logger.Debug().
				Str("image_ref", removed.ImageRef).
				Msg("attachment already removed")
		default:
			ts.logger.Warn().
				Err(err).
				Int("todo_id", removed.ID).
				Str("image_ref", removed.ImageRef).
				Msg("attachment left orphaned after todo delete")
		}
	}

	ts.events.Publish(domain.Event{
		Name:    domain.EventTodoDeleted,
		OwnerID: ownerID,
		TodoID:  removed.ID,
		At:      time.Now(),
	})

	return nil
}
