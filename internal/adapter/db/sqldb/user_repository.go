package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const userColumns = "id, name, email, password_hash, created_at, updated_at"

type UserRepository struct {
	db *DB
}

type userRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	user.ID = newID()

	query := r.db.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt.UnixMilli(),
		user.UpdatedAt.UnixMilli(),
	); err != nil {
		if isDuplicateKey(err) {
			err = errors.Join(domain.ErrUserAlreadyExists, err)
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}

	return domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    time.UnixMilli(row.CreatedAt).UTC(),
		UpdatedAt:    time.UnixMilli(row.UpdatedAt).UTC(),
	}, nil
}
