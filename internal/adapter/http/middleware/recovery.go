package middleware

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic into the 500 envelope.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("request_id", GetRequestID(c)),
			zap.Stack("stack"),
		)
		AbortWithServerError(c, fmt.Errorf("panic: %v", recovered))
	})
}
