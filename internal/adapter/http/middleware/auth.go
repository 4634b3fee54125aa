package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
)

const userKey = "user"

type userContextKey struct{}

// AuthMiddleware resolves the bearer token to a user and attaches it to the
// gin context and the request context.
func AuthMiddleware(authService ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, apierrors.MsgNoTokenProvided, lang)
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidToken):
				zap.L().Debug("rejected bearer token", zap.Error(err))
				abortUnauthorized(c, apierrors.MsgInvalidToken, lang)
			case errors.Is(err, domain.ErrUserNotFound):
				abortUnauthorized(c, apierrors.MsgInvalidTokenUserNotFound, lang)
			default:
				zap.L().Error("failed to authenticate request", zap.Error(err))
				AbortWithServerError(c, err)
			}
			return
		}

		c.Set(userKey, user)
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, msgKey, lang string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, msgKey, lang))
}

func GetCurrentUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(domain.User)
	return user, ok
}
