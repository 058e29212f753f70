package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"todolist/internal/adapter/database"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

var todoColumns = []string{
	"id", "title", "description", "status", "priority",
	"due_date", "image_ref", "owner_id", "created_at", "updated_at",
}

type TodoRepository struct {
	db *database.DB
}

func NewTodoRepository(db *database.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

// List applies the owner filter unconditionally; every other predicate is
// additive. Ordering always ends on id so pages stay deterministic when the
// primary sort key ties.
func (tr *TodoRepository) List(ctx context.Context, ownerID int, filter port.TodoFilter, sort port.TodoSort, page port.TodoPage) ([]domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"owner_id": ownerID})

	if filter.Status != nil {
		query = query.Where(sq.Eq{"status": *filter.Status})
	}

	if filter.Priority != nil {
		query = query.Where(sq.Eq{"priority": *filter.Priority})
	}

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where(sq.Or{
			sq.Expr(`LOWER(title) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(description) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	direction := "ASC"

	if sort.Desc {
		direction = "DESC"
	}

	query = query.
		OrderBy(orderColumn(sort.Key)+" "+direction, "id "+direction).
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Limit))

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, mapError(err)
	}

	defer rows.Close()

	todos := make([]domain.Todo, 0)

	for rows.Next() {
		todo, err := scanTodo(rows.Scan)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (tr *TodoRepository) GetByID(ctx context.Context, id, ownerID int) (domain.Todo, error) {
	return tr.getByID(ctx, tr.db, id, ownerID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (tr *TodoRepository) getByID(ctx context.Context, runner queryRower, id, ownerID int) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	row := runner.QueryRowContext(ctx, stmt, args...)

	todo, err := scanTodo(row.Scan)

	if err != nil {
		return domain.Todo{}, mapError(err)
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	tx, err := tr.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.Todo{}, err
	}

	defer tx.Rollback()

	stmt, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("title", "description", "status", "priority", "due_date", "image_ref", "owner_id", "created_at", "updated_at").
		Values(
			todo.Title,
			nullString(todo.Description),
			todo.Status,
			todo.Priority,
			nullTime(todo.DueDate),
			nullString(todo.ImageRef),
			todo.OwnerID,
			todo.CreatedAt,
			todo.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	var id int

	if err := tx.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return domain.Todo{}, mapError(err)
	}

	saved, err := tr.getByID(ctx, tx, id, todo.OwnerID)

	if err != nil {
		return domain.Todo{}, err
	}

	return saved, tx.Commit()
}

// Update applies only the patch's set fields and refreshes updated_at. An
// empty patch reads and returns the current row unchanged.
func (tr *TodoRepository) Update(ctx context.Context, id, ownerID int, patch port.TodoPatch) (domain.Todo, error) {
	if patch.IsEmpty() {
		return tr.GetByID(ctx, id, ownerID)
	}

	tx, err := tr.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.Todo{}, err
	}

	defer tx.Rollback()

	update := tr.db.QueryBuilder.Update("todos").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "owner_id": ownerID})

	if patch.Title != nil {
		update = update.Set("title", *patch.Title)
	}

	if patch.Description != nil {
		update = update.Set("description", nullString(*patch.Description))
	}

	if patch.Status != nil {
		update = update.Set("status", *patch.Status)
	}

	if patch.Priority != nil {
		update = update.Set("priority", *patch.Priority)
	}

	if patch.DueDate != nil {
		update = update.Set("due_date", *patch.DueDate)
	}

	stmt, args, err := update.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.Todo{}, mapError(err)
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.Todo{}, err
	}

	if affected == 0 {
		return domain.Todo{}, domain.ErrNotFound
	}

	updated, err := tr.getByID(ctx, tx, id, ownerID)

	if err != nil {
		return domain.Todo{}, err
	}

	return updated, tx.Commit()
}

// Delete reads the row before removing it so the caller can reclaim the
// attachment reference; both statements commit together.
func (tr *TodoRepository) Delete(ctx context.Context, id, ownerID int) (domain.Todo, error) {
	tx, err := tr.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.Todo{}, err
	}

	defer tx.Rollback()

	removed, err := tr.getByID(ctx, tx, id, ownerID)

	if err != nil {
		return domain.Todo{}, err
	}

	stmt, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return domain.Todo{}, mapError(err)
	}

	return removed, tx.Commit()
}

// escapeLike neutralizes LIKE metacharacters so a search term is matched as a
// literal substring.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderColumn(key port.SortKey) string {
	switch key {
	case port.SortByDueDate:
		return "due_date"
	case port.SortByPriority:
		return "priority"
	default:
		return "created_at"
	}
}

func scanTodo(scan func(dest ...any) error) (domain.Todo, error) {
	var (
		todo        domain.Todo
		description sql.NullString
		dueDate     sql.NullTime
		imageRef    sql.NullString
	)

	err := scan(
		&todo.ID,
		&todo.Title,
		&description,
		&todo.Status,
		&todo.Priority,
		&dueDate,
		&imageRef,
		&todo.OwnerID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if err != nil {
		return domain.Todo{}, err
	}

	todo.Description = description.String
	todo.ImageRef = imageRef.String

	if dueDate.Valid {
		due := dueDate.Time
		todo.DueDate = &due
	}

	return todo, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: *t, Valid: true}
}
