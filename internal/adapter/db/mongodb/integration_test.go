//go:build integration

package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"taskmanager/internal/adapter/db/mongodb"
	"taskmanager/internal/core/domain"
)

var uri string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		panic(err)
	}
	uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *mongodb.DB {
	t.Helper()

	ctx := context.Background()
	db, err := mongodb.Connect(ctx, uri, fmt.Sprintf("task_manager_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = db.Close(ctx)
	})

	return db
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	db := connect(t)
	require.NoError(t, db.Ping(ctx))

	users := mongodb.NewUserRepository(db)
	tasks := mongodb.NewTaskRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	var owner, stranger domain.User
	t.Run("user_repository", func(t *testing.T) {
		var err error
		owner, err = users.Create(ctx, domain.User{Name: "Owner", Email: "owner@x.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)
		stranger, err = users.Create(ctx, domain.User{Name: "Stranger", Email: "stranger@x.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)

		_, err = users.Create(ctx, domain.User{Name: "Dup", Email: "owner@x.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now})
		require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

		byEmail, err := users.FindByEmail(ctx, "owner@x.com")
		require.NoError(t, err)
		require.Equal(t, owner.ID, byEmail.ID)

		_, err = users.FindByID(ctx, "not-an-id")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("task_repository", func(t *testing.T) {
		description := "first"
		due := now.Add(24 * time.Hour)
		first, err := tasks.Create(ctx, domain.Task{
			Title: "one", Description: &description, Priority: domain.TaskPriorityHigh,
			DueDate: &due, OwnerID: owner.ID, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
		second, err := tasks.Create(ctx, domain.Task{
			Title: "two", Completed: true, Priority: domain.TaskPriorityLow,
			OwnerID: owner.ID, CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
		})
		require.NoError(t, err)

		got, err := tasks.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, first, got)

		list, total, err := tasks.List(ctx, domain.TaskFilter{}, domain.PageRequest{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
		require.Equal(t, second.ID, list[0].ID)

		completed := true
		list, total, err = tasks.List(ctx, domain.TaskFilter{Completed: &completed}, domain.PageRequest{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, second.ID, list[0].ID)

		title := "hijack"
		_, err = tasks.UpdateOwned(ctx, first.ID, stranger.ID, domain.UpdateTaskInput{Title: &title}, now)
		require.ErrorIs(t, err, domain.ErrTaskNotFound)

		updated, err := tasks.UpdateOwned(ctx, first.ID, owner.ID, domain.UpdateTaskInput{
			Title: &title, DescriptionSet: true, DueDateSet: true,
		}, now.Add(time.Minute))
		require.NoError(t, err)
		require.Equal(t, "hijack", updated.Title)
		require.Nil(t, updated.Description)
		require.Nil(t, updated.DueDate)

		require.ErrorIs(t, tasks.DeleteOwned(ctx, first.ID, stranger.ID), domain.ErrTaskNotFound)
		require.NoError(t, tasks.DeleteOwned(ctx, first.ID, owner.ID))
		_, err = tasks.FindByID(ctx, first.ID)
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}
