package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskmanager/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) FindByID(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) List(ctx context.Context, filter domain.TaskFilter, page domain.PageRequest) ([]domain.Task, int64, error) {
	args := m.Called(ctx, filter, page)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Get(1).(int64), args.Error(2)
}

func (m *taskRepositoryMock) UpdateOwned(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error) {
	args := m.Called(ctx, id, ownerID, input, updatedAt)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) DeleteOwned(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type tokenManagerMock struct {
	mock.Mock
}

func (m *tokenManagerMock) Issue(userID string) (string, time.Time, error) {
	args := m.Called(userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *tokenManagerMock) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type passwordHasherMock struct {
	mock.Mock
}

func (m *passwordHasherMock) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *passwordHasherMock) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}
