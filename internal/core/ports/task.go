package ports

import (
	"context"
	"time"

	"taskmanager/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	FindByID(ctx context.Context, id string) (domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter, page domain.PageRequest) ([]domain.Task, int64, error)
	// UpdateOwned and DeleteOwned only touch a task matching both id and
	// owner; otherwise they return domain.ErrTaskNotFound.
	UpdateOwned(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter, page domain.PageRequest) (domain.TaskPage, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	UpdateTask(ctx context.Context, id, callerID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id, callerID string) error
}
