package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/pkg/apierrors"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Task   *handlers.TaskHandler
	// AuthGate guards the protected routes.
	AuthGate gin.HandlerFunc
}

// RegisterRoutes wires every route. Validation runs before the auth gate.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	validation.Setup()

	r.Use(middleware.LanguageMiddleware())

	r.GET("/health", h.Health.CheckHealth)
	r.GET("/health/report", h.Health.CheckHealthReport)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", validation.RegisterBody(), h.Auth.Register)
		auth.POST("/login", validation.LoginBody(), h.Auth.Login)
		auth.GET("/me", h.AuthGate, h.Auth.Me)

		tasks := api.Group("/tasks")
		tasks.GET("", validation.TaskListQuery(), h.Task.ListTasks)
		tasks.GET("/:id", validation.TaskIDParam(), h.Task.GetTask)
		tasks.POST("", validation.CreateTaskBody(), h.AuthGate, h.Task.CreateTask)
		tasks.PUT("/:id", validation.TaskIDParam(), validation.UpdateTaskBody(), h.AuthGate, h.Task.UpdateTask)
		tasks.DELETE("/:id", validation.TaskIDParam(), h.AuthGate, h.Task.DeleteTask)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgRouteNotFound, middleware.GetLang(c)),
		)
	})
}
