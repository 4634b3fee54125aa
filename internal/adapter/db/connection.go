package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskmanager/internal/adapter/db/mongodb"
	"taskmanager/internal/adapter/db/sqldb"
	"taskmanager/internal/config"
	"taskmanager/internal/core/ports"
)

// Store bundles the repositories of the configured backend.
type Store struct {
	Tasks  ports.TaskRepository
	Users  ports.UserRepository
	Health ports.HealthChecker

	close func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Connect opens the backend selected by DATABASE_DRIVER.
func Connect(ctx context.Context, conf *config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, conf.Database.ConnectTimeout)
	defer cancel()

	driver := conf.Database.Driver
	zap.L().Info("connecting to database", zap.String("driver", driver))

	switch driver {
	case config.DriverMongo:
		conn, err := mongodb.Connect(ctx, conf.DSN(), conf.Database.Name)
		if err != nil {
			return nil, err
		}
		return &Store{
			Tasks:  mongodb.NewTaskRepository(conn),
			Users:  mongodb.NewUserRepository(conn),
			Health: conn,
			close:  conn.Close,
		}, nil

	case config.DriverMySQL, config.DriverPostgres, config.DriverSQLite:
		conn, err := sqldb.Connect(ctx, sqldb.Dialect(driver), conf.DSN())
		if err != nil {
			return nil, err
		}
		return NewSQLStore(conn), nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// NewSQLStore wraps an open SQL connection.
func NewSQLStore(conn *sqldb.DB) *Store {
	return &Store{
		Tasks:  sqldb.NewTaskRepository(conn),
		Users:  sqldb.NewUserRepository(conn),
		Health: conn,
		close: func(context.Context) error {
			return conn.Close()
		},
	}
}
