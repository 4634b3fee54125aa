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
	MsgUserRegistered  = "userRegistered"
	MsgLoginSuccessful = "loginSuccessful"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	result, err := h.authService.Register(c.Request.Context(), validation.RegisterInput(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgUserAlreadyExists, lang),
			)
			return
		}

		zap.L().Error("failed to register user", zap.Error(err))
		middleware.AbortWithServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(translate(c, MsgUserRegistered), mapper.ToAuthData(result)))
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)
	req := validation.LoginInput(c)

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang),
			)
			return
		}

		zap.L().Error("failed to log in", zap.Error(err))
		middleware.AbortWithServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(translate(c, MsgLoginSuccessful), mapper.ToAuthData(result)))
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.OK("", dto.UserData{User: mapper.ToUserItem(user)}))
}
