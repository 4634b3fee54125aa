package ports

import (
	"context"
	"time"

	"taskmanager/internal/core/domain"
)

type UserRepository interface {
	// Create returns domain.ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

type TokenManager interface {
	Issue(userID string) (string, time.Time, error)
	// Verify returns the user id carried by a valid token, or an error
	// wrapping domain.ErrInvalidToken.
	Verify(token string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (domain.AuthResult, error)
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

// HealthChecker reports the reachability of a backing service.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
