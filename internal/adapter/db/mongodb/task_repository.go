package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskRepository struct {
	collection *mongo.Collection
}

type taskDocument struct {
	ID          bson.ObjectID `bson:"_id"`
	Title       string        `bson:"title"`
	Description *string       `bson:"description,omitempty"`
	Completed   bool          `bson:"completed"`
	Priority    string        `bson:"priority"`
	DueDate     *time.Time    `bson:"dueDate,omitempty"`
	User        bson.ObjectID `bson:"user"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{collection: db.database.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	owner, err := bson.ObjectIDFromHex(task.OwnerID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("parse owner id: %w", err)
	}

	doc := taskDocument{
		ID:          bson.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		User:        owner,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return mapTaskDocumentToDomainTask(doc), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return r.findOne(ctx, bson.D{{Key: "_id", Value: objectID}})
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter, page domain.PageRequest) ([]domain.Task, int64, error) {
	query := buildTaskFilter(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find tasks: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, mapTaskDocumentToDomainTask(doc))
	}

	return tasks, total, nil
}

func (r *TaskRepository) UpdateOwned(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	set := bson.D{{Key: "updatedAt", Value: updatedAt}}
	unset := bson.D{}

	if input.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *input.Title})
	}
	if input.DescriptionSet {
		if input.Description == nil {
			unset = append(unset, bson.E{Key: "description", Value: ""})
		} else {
			set = append(set, bson.E{Key: "description", Value: *input.Description})
		}
	}
	if input.Completed != nil {
		set = append(set, bson.E{Key: "completed", Value: *input.Completed})
	}
	if input.Priority != nil {
		set = append(set, bson.E{Key: "priority", Value: string(*input.Priority)})
	}
	if input.DueDateSet {
		if input.DueDate == nil {
			unset = append(unset, bson.E{Key: "dueDate", Value: ""})
		} else {
			set = append(set, bson.E{Key: "dueDate", Value: *input.DueDate})
		}
	}

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	var doc taskDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}

	return mapTaskDocumentToDomainTask(doc), nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return domain.ErrTaskNotFound
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) findOne(ctx context.Context, filter bson.D) (domain.Task, error) {
	var doc taskDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("find task: %w", err)
	}

	return mapTaskDocumentToDomainTask(doc), nil
}

func ownedFilter(id, ownerID string) (bson.D, bool) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}

	return bson.D{{Key: "_id", Value: objectID}, {Key: "user", Value: owner}}, true
}

func buildTaskFilter(filter domain.TaskFilter) bson.D {
	query := bson.D{}
	if filter.Completed != nil {
		query = append(query, bson.E{Key: "completed", Value: *filter.Completed})
	}
	if filter.Priority != nil {
		query = append(query, bson.E{Key: "priority", Value: string(*filter.Priority)})
	}
	return query
}

func mapTaskDocumentToDomainTask(doc taskDocument) domain.Task {
	task := domain.Task{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Completed:   doc.Completed,
		Priority:    domain.TaskPriority(doc.Priority),
		OwnerID:     doc.User.Hex(),
		CreatedAt:   doc.CreatedAt.UTC(),
		UpdatedAt:   doc.UpdatedAt.UTC(),
	}

	if doc.DueDate != nil {
		value := doc.DueDate.UTC()
		task.DueDate = &value
	}

	return task
}
