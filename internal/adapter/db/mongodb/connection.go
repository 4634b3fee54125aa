// Package mongodb stores users and tasks as documents in MongoDB.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// DB is the process-wide client plus the database holding both collections.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect opens the client, pings the primary and ensures the indexes exist.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	db := &DB{client: client, database: client.Database(database)}
	if err := db.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return db, nil
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	if _, err := db.database.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	if _, err := db.database.Collection(tasksCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetName("tasks_user_idx")},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("tasks_created_at_idx")},
	}); err != nil {
		return fmt.Errorf("create tasks indexes: %w", err)
	}

	return nil
}

func (db *DB) Name() string {
	return "mongodb"
}

func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Drop removes the database; used by tests.
func (db *DB) Drop(ctx context.Context) error {
	return db.database.Drop(ctx)
}
