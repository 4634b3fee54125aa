package tests

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Register", mock.Anything, domain.RegisterInput{
			Name:     "Jane Doe",
			Email:    "jane@x.com",
			Password: "secret1",
		}).Return(domain.AuthResult{
			User:  domain.User{ID: ownerID, Name: "Jane Doe", Email: "jane@x.com", PasswordHash: "hash", CreatedAt: createdAt},
			Token: "signed-token",
		}, nil).Once()

		body := `{"name":"  Jane Doe ","email":"Jane@X.com","password":"secret1"}`
		rec, got := f.do(t, http.MethodPost, "/api/auth/register", strings.NewReader(body), "")

		require.Equal(t, http.StatusCreated, rec.Code)
		require.True(t, got.Success)
		require.Equal(t, "User registered successfully", got.Message)
		require.NotContains(t, rec.Body.String(), "hash")

		var data dto.AuthData
		require.NoError(t, json.Unmarshal(got.Data, &data))
		require.Equal(t, "signed-token", data.Token)
		require.Equal(t, dto.UserItem{
			ID:        ownerID,
			Name:      "Jane Doe",
			Email:     "jane@x.com",
			CreatedAt: "2026-02-13T10:20:30.000Z",
		}, data.User)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Register", mock.Anything, mock.Anything).
			Return(domain.AuthResult{}, fmt.Errorf("insert user: %w", domain.ErrUserAlreadyExists)).Once()

		body := `{"name":"Jane","email":"jane@x.com","password":"secret1"}`
		rec, got := f.do(t, http.MethodPost, "/api/auth/register", strings.NewReader(body), "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.False(t, got.Success)
		require.Equal(t, "User already exists with this email", got.Message)
	})

	t.Run("invalid fields", func(t *testing.T) {
		f := newFixture(t)

		body := `{"name":"J","email":"nope","password":"123","role":"admin"}`
		rec, got := f.do(t, http.MethodPost, "/api/auth/register", strings.NewReader(body), "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Validation error", got.Message)
		require.ElementsMatch(t, []apierrors.FieldError{
			{Field: "role", Message: "role is not allowed"},
			{Field: "name", Message: "name must be at least 2 characters long"},
			{Field: "email", Message: "email must be a valid email"},
			{Field: "password", Message: "password must be at least 6 characters long"},
		}, got.Errors)
		f.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)

		rec, got := f.do(t, http.MethodPost, "/api/auth/register", strings.NewReader(`{"name":`), "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, []apierrors.FieldError{{Field: "body", Message: "body must be valid JSON"}}, got.Errors)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, "owner@x.com", "secret1").
			Return(domain.AuthResult{User: owner, Token: "signed-token"}, nil).Once()

		rec, got := f.do(t, http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"OWNER@x.com","password":"secret1"}`), "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Login successful", got.Message)

		var data dto.AuthData
		require.NoError(t, json.Unmarshal(got.Data, &data))
		require.Equal(t, "signed-token", data.Token)
		require.Equal(t, ownerID, data.User.ID)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, "owner@x.com", "wrong-pass").
			Return(domain.AuthResult{}, domain.ErrInvalidCredentials).Once()

		rec, got := f.do(t, http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"owner@x.com","password":"wrong-pass"}`), "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid email or password", got.Message)
	})

	t.Run("missing password", func(t *testing.T) {
		f := newFixture(t)

		rec, got := f.do(t, http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"owner@x.com"}`), "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, []apierrors.FieldError{{Field: "password", Message: "password is required"}}, got.Errors)
	})

	t.Run("service error", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.AuthResult{}, errors.New("db is down")).Once()

		rec, got := f.do(t, http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"owner@x.com","password":"secret1"}`), "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Server error", got.Message)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		f := newFixture(t)

		rec, got := f.do(t, http.MethodGet, "/api/auth/me", nil, ownerToken)

		require.Equal(t, http.StatusOK, rec.Code)
		var data dto.UserData
		require.NoError(t, json.Unmarshal(got.Data, &data))
		require.Equal(t, ownerID, data.User.ID)
		require.Equal(t, "owner@x.com", data.User.Email)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Authenticate", mock.Anything, "forged").Return(domain.User{}, domain.ErrInvalidToken).Once()

		rec, got := f.do(t, http.MethodGet, "/api/auth/me", nil, "forged")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid token.", got.Message)
	})

	t.Run("deleted user", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Authenticate", mock.Anything, "orphan").Return(domain.User{}, domain.ErrUserNotFound).Once()

		rec, got := f.do(t, http.MethodGet, "/api/auth/me", nil, "orphan")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid token. User not found.", got.Message)
	})
}
