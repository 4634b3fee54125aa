package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
)

const (
	MsgTaskCreated = "taskCreated"
	MsgTaskUpdated = "taskUpdated"
	MsgTaskDeleted = "taskDeleted"
)

// TaskHandler expects the validation middlewares to run first; protected
// routes also expect middleware.AuthMiddleware.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	page, err := h.taskService.ListTasks(c.Request.Context(), validation.TaskFilter(c), validation.PageRequest(c))
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		middleware.AbortWithServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("", mapper.ToTaskListData(page)))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := validation.TaskID(c)

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to get task", zap.String("task_id", taskID), zap.Error(err))
		middleware.AbortWithServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("", dto.TaskData{Task: mapper.ToTaskItem(task)}))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), user.ID, validation.CreateTaskInput(c))
	if err != nil {
		zap.L().Error("failed to create task", zap.String("user_id", user.ID), zap.Error(err))
		middleware.AbortWithServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(translate(c, MsgTaskCreated), dto.TaskData{Task: mapper.ToTaskItem(task)}))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID := validation.TaskID(c)

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, user.ID, validation.UpdateTaskInput(c))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskUpdateForbidden, lang),
			)
			return
		}

		zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
		middleware.AbortWithServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(translate(c, MsgTaskUpdated), dto.TaskData{Task: mapper.ToTaskItem(task)}))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID := validation.TaskID(c)

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, user.ID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskDeleteForbidden, lang),
			)
			return
		}

		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		middleware.AbortWithServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(translate(c, MsgTaskDeleted), nil))
}

// currentUser answers 401 itself when the auth middleware did not run.
func currentUser(c *gin.Context) (domain.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNoTokenProvided, middleware.GetLang(c)),
		)
	}
	return user, ok
}

func translate(c *gin.Context, msgKey string) string {
	return apierrors.GetTransMsg(msgKey, middleware.GetLang(c), nil)
}
