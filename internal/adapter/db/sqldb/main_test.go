package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskmanager/internal/core/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Connect(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func createTestUser(t *testing.T, db *DB, email string) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	user, err := NewUserRepository(db).Create(context.Background(), domain.User{
		Name:         "Tester",
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	return user
}
