package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const taskColumns = "id, title, description, completed, priority, due_date, owner_id, created_at, updated_at"

type TaskRepository struct {
	db *DB
}

// Timestamps are stored as unix milliseconds to keep ordering identical
// across dialects.
type taskRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Completed   bool           `db:"completed"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullInt64  `db:"due_date"`
	OwnerID     string         `db:"owner_id"`
	CreatedAt   int64          `db:"created_at"`
	UpdatedAt   int64          `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.ID = newID()
	row := mapDomainTaskToTaskRow(task)

	query := r.db.Rebind(`INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.Title,
		row.Description,
		row.Completed,
		row.Priority,
		row.DueDate,
		row.OwnerID,
		row.CreatedAt,
		row.UpdatedAt,
	); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("select task: %w", err)
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter, page domain.PageRequest) ([]domain.Task, int64, error) {
	where, args := buildTaskFilter(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM tasks`+where), args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, append(args, page.Limit, page.Offset())...); err != nil {
		return nil, 0, fmt.Errorf("select tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, total, nil
}

func (r *TaskRepository) UpdateOwned(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if input.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *input.Title)
	}
	if input.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, nullString(input.Description))
	}
	if input.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *input.Completed)
	}
	if input.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*input.Priority))
	}
	if input.DueDateSet {
		sets = append(sets, "due_date = ?")
		args = append(args, nullMillis(input.DueDate))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, updatedAt.UnixMilli(), id, ownerID)

	query := r.db.Rebind(`UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND owner_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}

	// MySQL reports zero affected rows for no-op updates, so the match is
	// confirmed by reading the row back under the same ownership predicate.
	var row taskRow
	selectQuery := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND owner_id = ?`)
	if err := r.db.GetContext(ctx, &row, selectQuery, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("select updated task: %w", err)
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE id = ? AND owner_id = ?`), id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func buildTaskFilter(filter domain.TaskFilter) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.Priority != nil {
		clauses = append(clauses, "priority = ?")
		args = append(args, string(*filter.Priority))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func mapDomainTaskToTaskRow(task domain.Task) taskRow {
	return taskRow{
		ID:          task.ID,
		Title:       task.Title,
		Description: nullString(task.Description),
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		DueDate:     nullMillis(task.DueDate),
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt.UnixMilli(),
		UpdatedAt:   task.UpdatedAt.UnixMilli(),
	}
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Completed: row.Completed,
		Priority:  domain.TaskPriority(row.Priority),
		OwnerID:   row.OwnerID,
		CreatedAt: time.UnixMilli(row.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(row.UpdatedAt).UTC(),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := time.UnixMilli(row.DueDate.Int64).UTC()
		task.DueDate = &value
	}

	return task
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: value.UnixMilli(), Valid: true}
}

// newID produces the same 24-char hex identifiers as the document store.
func newID() string {
	return bson.NewObjectID().Hex()
}
