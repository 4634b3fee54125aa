package validation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

const maxBodyBytes = 1 << 20

const (
	taskIDKey      = "validation.task_id"
	bodyKey        = "validation.body"
	taskFilterKey  = "validation.task_filter"
	pageRequestKey = "validation.page_request"
)

// TaskIDParam validates the :id path parameter.
func TaskIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := BuildTaskID(c.Param("id"), middleware.GetLang(c))
		if err != nil {
			abort(c, apierrors.MsgInvalidParameters, err)
			return
		}
		c.Set(taskIDKey, id)
		c.Next()
	}
}

// TaskListQuery validates the list filters and pagination.
func TaskListQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, page, err := BuildTaskListQuery(c.Request.URL.Query(), middleware.GetLang(c))
		if err != nil {
			abort(c, apierrors.MsgInvalidQueryParameters, err)
			return
		}
		c.Set(taskFilterKey, filter)
		c.Set(pageRequestKey, page)
		c.Next()
	}
}

func CreateTaskBody() gin.HandlerFunc {
	return body(BuildCreateTaskInput)
}

func UpdateTaskBody() gin.HandlerFunc {
	return body(BuildUpdateTaskInput)
}

func RegisterBody() gin.HandlerFunc {
	return body(BuildRegisterInput)
}

func LoginBody() gin.HandlerFunc {
	return body(BuildLoginInput)
}

func body[T any](build func([]byte, string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := middleware.GetLang(c)

		payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
		if err != nil {
			abort(c, apierrors.MsgValidationError, Errors{
				apierrors.NewFieldError("body", apierrors.MsgBodyMalformed, lang, nil),
			})
			return
		}

		value, err := build(payload, lang)
		if err != nil {
			abort(c, apierrors.MsgValidationError, err)
			return
		}
		c.Set(bodyKey, value)
		c.Next()
	}
}

func abort(c *gin.Context, msgKey string, err error) {
	lang := middleware.GetLang(c)

	var errs Errors
	if errors.As(err, &errs) {
		c.AbortWithStatusJSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, msgKey, lang).WithErrors(errs),
		)
		return
	}

	zap.L().Error("request validation failed", zap.Error(err))
	_ = c.Error(err)
	c.AbortWithStatusJSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgServerError, lang),
	)
}

func TaskID(c *gin.Context) string {
	return c.GetString(taskIDKey)
}

func TaskFilter(c *gin.Context) domain.TaskFilter {
	filter, _ := c.Get(taskFilterKey)
	value, _ := filter.(domain.TaskFilter)
	return value
}

// PageRequest falls back to the defaults when the query was not validated.
func PageRequest(c *gin.Context) domain.PageRequest {
	page, ok := c.Get(pageRequestKey)
	if !ok {
		return domain.PageRequest{Page: domain.DefaultPage, Limit: domain.DefaultLimit}
	}
	value, _ := page.(domain.PageRequest)
	return value
}

func CreateTaskInput(c *gin.Context) domain.CreateTaskInput {
	return bodyValue[domain.CreateTaskInput](c)
}

func UpdateTaskInput(c *gin.Context) domain.UpdateTaskInput {
	return bodyValue[domain.UpdateTaskInput](c)
}

func RegisterInput(c *gin.Context) domain.RegisterInput {
	return bodyValue[domain.RegisterInput](c)
}

func LoginInput(c *gin.Context) dto.LoginRequest {
	return bodyValue[dto.LoginRequest](c)
}

func bodyValue[T any](c *gin.Context) T {
	value, _ := c.Get(bodyKey)
	typed, _ := value.(T)
	return typed
}
