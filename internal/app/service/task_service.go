package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository, now: time.Now}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	now := s.timestamp()
	task := domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Priority:    priority,
		DueDate:     truncateTime(input.DueDate),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.taskRepository.Create(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter, page domain.PageRequest) (domain.TaskPage, error) {
	page = page.Normalize()

	tasks, total, err := s.taskRepository.List(ctx, filter, page)
	if err != nil {
		return domain.TaskPage{}, fmt.Errorf("list tasks: %w", err)
	}

	return domain.TaskPage{
		Tasks:      tasks,
		Pagination: domain.NewPagination(page, len(tasks), total),
	}, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.FindByID(ctx, id)
}

func (s *TaskService) UpdateTask(ctx context.Context, id, callerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	if _, err := s.authorizeOwner(ctx, id, callerID); err != nil {
		return domain.Task{}, err
	}

	input.DueDate = truncateTime(input.DueDate)
	return s.taskRepository.UpdateOwned(ctx, id, callerID, input, s.timestamp())
}

func (s *TaskService) DeleteTask(ctx context.Context, id, callerID string) error {
	if _, err := s.authorizeOwner(ctx, id, callerID); err != nil {
		return err
	}

	return s.taskRepository.DeleteOwned(ctx, id, callerID)
}

// authorizeOwner loads the task and checks that callerID owns it. A task
// owned by someone else is reported as domain.ErrTaskNotFound.
func (s *TaskService) authorizeOwner(ctx context.Context, id, callerID string) (domain.Task, error) {
	task, err := s.taskRepository.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if !task.IsOwnedBy(callerID) {
		zap.L().Debug("task ownership check failed",
			zap.String("task_id", id),
			zap.String("caller_id", callerID),
		)
		return domain.Task{}, errors.Join(domain.ErrTaskNotFound, errNotOwner)
	}

	return task, nil
}

var errNotOwner = errors.New("caller does not own task")

// Stores keep millisecond precision, so timestamps are truncated up front
// to make the returned record match what a later read yields.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func truncateTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC().Truncate(time.Millisecond)
	return &value
}
