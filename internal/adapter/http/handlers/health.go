package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/ports"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
	healthTimeFmt   = "2006-01-02 15:04:05"
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
}

type HealthAdvanced struct {
	AppName           string            `json:"app_name"`
	AppVersion        string            `json:"app_version"`
	CurrentSystemTime string            `json:"current_system_time"`
	Language          string            `json:"language"`
	Status            map[string]string `json:"status"`
}

type HealthHandler struct {
	checkers []ports.HealthChecker
	now      func() time.Time
}

func NewHealthHandler(checkers ...ports.HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers, now: time.Now}
}

// CheckHealth answers 200 when every backing service responds, 503 otherwise.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statuses := h.statuses(c.Request.Context())

	statusCode := http.StatusOK
	message := StatusOk
	for _, status := range statuses {
		if status != StatusOk {
			statusCode = http.StatusServiceUnavailable
			message = StatusDown
			break
		}
	}

	c.JSON(statusCode, dto.Response{
		Success: statusCode == http.StatusOK,
		Message: message,
		Data: HealthBasic{
			AppName:           getAppName(),
			AppVersion:        getAppVersion(),
			CurrentSystemTime: h.now().Format(healthTimeFmt),
		},
	})
}

// CheckHealthReport always answers 200 with the status of each service.
func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK("", HealthAdvanced{
		AppName:           getAppName(),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: h.now().Format(healthTimeFmt),
		Language:          middleware.GetLang(c),
		Status:            h.statuses(c.Request.Context()),
	}))
}

func (h *HealthHandler) statuses(ctx context.Context) map[string]string {
	statuses := make(map[string]string, len(h.checkers))
	for _, checker := range h.checkers {
		statuses[checker.Name()] = StatusOk

		// Avoid hanging health checks if the database stalls.
		timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
		err := checker.Ping(timeoutCtx)
		cancel()
		if err != nil {
			zap.L().Warn("health check failed", zap.String("service", checker.Name()), zap.Error(err))
			statuses[checker.Name()] = StatusDown
		}
	}
	return statuses
}

func getAppName() string {
	name := os.Getenv("APP_NAME")
	if name == "" {
		return "task-manager-api"
	}
	return name
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
