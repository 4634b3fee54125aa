package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/pkg/apierrors"
)

const exposeErrorsKey = "expose_errors"

// ErrorDetails controls whether 500 responses carry the underlying error
// text. It is enabled in development only.
func ErrorDetails(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(exposeErrorsKey, expose)
		c.Next()
	}
}

// AbortWithServerError answers the generic 500 envelope and records err on
// the gin context for the request logger.
func AbortWithServerError(c *gin.Context, err error) {
	_ = c.Error(err)

	jsonErr := apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgServerError, GetLang(c))
	if c.GetBool(exposeErrorsKey) {
		jsonErr = jsonErr.WithDetail(err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, jsonErr)
}
