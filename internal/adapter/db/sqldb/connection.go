// Package sqldb stores users and tasks in MySQL, PostgreSQL or SQLite via sqlx.
package sqldb

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

//go:embed migrations
var migrations embed.FS

// driverName maps a dialect to the database/sql driver registered for it.
func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectMySQL:
		return "mysql", nil
	case DialectPostgres:
		return "pgx", nil
	case DialectSQLite:
		return "sqlite", nil
	}
	return "", fmt.Errorf("unsupported sql dialect %q", d)
}

func (d Dialect) gooseDialect() goose.Dialect {
	switch d {
	case DialectMySQL:
		return goose.DialectMySQL
	case DialectPostgres:
		return goose.DialectPostgres
	default:
		return goose.DialectSQLite3
	}
}

// DB is the process-wide SQL connection pool shared by the repositories.
type DB struct {
	*sqlx.DB
	dialect Dialect
}

// Connect opens the pool, verifies it and applies the embedded migrations.
func Connect(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		dsn = withSQLitePragmas(dsn)
	}

	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dialect, err)
	}

	db := &DB{DB: conn, dialect: dialect}
	if err := db.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations/"+string(db.dialect))
	if err != nil {
		return fmt.Errorf("open %s migrations: %w", db.dialect, err)
	}

	provider, err := goose.NewProvider(db.dialect.gooseDialect(), db.DB.DB, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, result := range results {
		zap.L().Info("applied migration",
			zap.String("dialect", string(db.dialect)),
			zap.String("source", result.Source.Path),
			zap.Duration("duration", result.Duration),
		)
	}

	return nil
}

func (db *DB) Name() string {
	return string(db.dialect)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

func withSQLitePragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}
