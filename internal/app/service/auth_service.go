package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type AuthService struct {
	userRepository ports.UserRepository
	tokens         ports.TokenManager
	hasher         ports.PasswordHasher
	now            func() time.Time
}

func NewAuthService(userRepository ports.UserRepository, tokens ports.TokenManager, hasher ports.PasswordHasher) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		tokens:         tokens,
		hasher:         hasher,
		now:            time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)

	// Friendlier error only; the unique index decides.
	_, err := s.userRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.AuthResult{}, domain.ErrUserAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.AuthResult{}, fmt.Errorf("find user by email: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	user, err := s.userRepository.Create(ctx, domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return domain.AuthResult{}, domain.ErrUserAlreadyExists
		}
		return domain.AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	user, err := s.userRepository.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthResult{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResult{}, fmt.Errorf("find user by email: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return domain.AuthResult{}, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		zap.L().Debug("token verification failed", zap.Error(err))
		return domain.User{}, domain.ErrInvalidToken
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}

func (s *AuthService) issue(user domain.User) (domain.AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return domain.AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
