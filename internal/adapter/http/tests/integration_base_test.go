package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	dbadapter "taskmanager/internal/adapter/db"
	"taskmanager/internal/adapter/db/sqldb"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/security"
	"taskmanager/internal/adapter/token"
	appservice "taskmanager/internal/app/service"
	"taskmanager/pkg/apierrors"
	"taskmanager/pkg/translator"
)

const translationFolder = "../../../../pkg/translator/translation"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  translationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	os.Exit(m.Run())
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Errors  []apierrors.FieldError `json:"errors"`
}

// IntegrationSuiteBase runs the full router against a fresh SQLite file per test.
type IntegrationSuiteBase struct {
	suite.Suite

	store  *dbadapter.Store
	router *gin.Engine
}

func (s *IntegrationSuiteBase) SetupTest() {
	conn, err := sqldb.Connect(context.Background(), sqldb.DialectSQLite, filepath.Join(s.T().TempDir(), "tasks.db"))
	s.Require().NoError(err)
	s.store = dbadapter.NewSQLStore(conn)

	tokens := token.NewJWT("integration-secret", "task-manager-api", time.Hour)
	authService := appservice.NewAuthService(s.store.Users, tokens, security.NewBcryptHasher(bcrypt.MinCost))
	taskService := appservice.NewTaskService(s.store.Tasks)

	router := gin.New()
	router.Use(middleware.ErrorDetails(true), middleware.RecoveryMiddleware(zap.NewNop()))
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:   handlers.NewHealthHandler(s.store.Health),
		Auth:     handlers.NewAuthHandler(authService),
		Task:     handlers.NewTaskHandler(taskService),
		AuthGate: middleware.AuthMiddleware(authService),
	})
	s.router = router
}

func (s *IntegrationSuiteBase) TearDownTest() {
	if s.store != nil {
		s.Require().NoError(s.store.Close(context.Background()))
	}
}

func (s *IntegrationSuiteBase) request(method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	var payload []byte
	switch v := body.(type) {
	case nil:
	case string:
		payload = []byte(v)
	default:
		var err error
		payload, err = json.Marshal(v)
		s.Require().NoError(err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var got envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got), rec.Body.String())
	return rec, got
}

// register creates an account and returns its bearer token and user.
func (s *IntegrationSuiteBase) register(name, email string) (string, dto.UserItem) {
	rec, got := s.request(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret1",
	}, "")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var data dto.AuthData
	s.Require().NoError(json.Unmarshal(got.Data, &data))
	s.Require().NotEmpty(data.Token)
	return data.Token, data.User
}

func (s *IntegrationSuiteBase) createTask(token string, body map[string]any) dto.TaskItem {
	rec, got := s.request(http.MethodPost, "/api/tasks", body, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var data dto.TaskData
	s.Require().NoError(json.Unmarshal(got.Data, &data))
	return data.Task
}

func (s *IntegrationSuiteBase) getTask(id string) dto.TaskItem {
	rec, got := s.request(http.MethodGet, "/api/tasks/"+id, nil, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var data dto.TaskData
	s.Require().NoError(json.Unmarshal(got.Data, &data))
	return data.Task
}

func (s *IntegrationSuiteBase) listTasks(query string) dto.TaskListData {
	rec, got := s.request(http.MethodGet, "/api/tasks"+query, nil, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var data dto.TaskListData
	s.Require().NoError(json.Unmarshal(got.Data, &data))
	return data
}
