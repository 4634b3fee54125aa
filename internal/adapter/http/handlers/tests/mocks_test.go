package tests

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
	"taskmanager/pkg/translator"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter, page domain.PageRequest) (domain.TaskPage, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(domain.TaskPage), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id, callerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, callerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id, callerID string) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *authServiceMock) Authenticate(ctx context.Context, token string) (domain.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.User), args.Error(1)
}

type healthCheckerMock struct {
	mock.Mock
}

func (m *healthCheckerMock) Name() string {
	return "mongodb"
}

func (m *healthCheckerMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var (
	_ ports.TaskService   = (*taskServiceMock)(nil)
	_ ports.AuthService   = (*authServiceMock)(nil)
	_ ports.HealthChecker = (*healthCheckerMock)(nil)
)

const (
	ownerID    = "65f1c0a1b2c3d4e5f6a7b8c1"
	strangerID = "65f1c0a1b2c3d4e5f6a7b8c2"
	taskID     = "65f1c0a1b2c3d4e5f6a7b8c9"
	ownerToken = "owner-token"
)

var owner = domain.User{ID: ownerID, Name: "Owner", Email: "owner@x.com"}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Error   string                 `json:"error"`
	Errors  []apierrors.FieldError `json:"errors"`
}

type fixture struct {
	tasks  *taskServiceMock
	auth   *authServiceMock
	health *healthCheckerMock
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		tasks:  new(taskServiceMock),
		auth:   new(authServiceMock),
		health: new(healthCheckerMock),
	}
	f.auth.On("Authenticate", mock.Anything, ownerToken).Return(owner, nil).Maybe()

	f.router = gin.New()
	f.router.Use(middleware.ErrorDetails(false), middleware.RecoveryMiddleware(zap.NewNop()))
	httpadapter.RegisterRoutes(f.router, httpadapter.Handlers{
		Health:   handlers.NewHealthHandler(f.health),
		Auth:     handlers.NewAuthHandler(f.auth),
		Task:     handlers.NewTaskHandler(f.tasks),
		AuthGate: middleware.AuthMiddleware(f.auth),
	})

	t.Cleanup(func() {
		f.tasks.AssertExpectations(t)
		f.auth.AssertExpectations(t)
		f.health.AssertExpectations(t)
	})

	return f
}

func (f *fixture) do(t *testing.T, method, path string, body io.Reader, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), rec.Body.String())
	return rec, got
}
