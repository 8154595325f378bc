package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/luciancic/todo-api/internal/model"
)

// TodoRepository defines the interface for todo-related database operations.
// Every read and write is filtered by owner; a todo belonging to another
// user behaves exactly like a missing document.
type TodoRepository interface {
	CreateTodo(ctx context.Context, todo *model.Todo) (*model.Todo, error)
	GetTodo(ctx context.Context, id, ownerID string) (*model.Todo, error)
	ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error)
	UpdateTodo(ctx context.Context, id, ownerID string, params UpdateTodoParams) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id, ownerID string) (*model.Todo, error)
}

// UpdateTodoParams defines the fields applied by UpdateTodo. Text is
// only updated when non-nil; Completed and CompletedAt are always
// written together so the pair can never drift apart.
type UpdateTodoParams struct {
	Text        *string
	Completed   bool
	CompletedAt *time.Time
}

const todoCollection = "todos"

type todoMongoRepository struct {
	db *mongo.Database
}

func NewTodoMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) TodoRepository {
	collection := db.Collection(todoCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create todo indexes")
	}

	return &todoMongoRepository{db: db}
}

func (r *todoMongoRepository) CreateTodo(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	result, err := r.db.Collection(todoCollection).InsertOne(ctx, todo)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		todo.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return todo, nil
}

func (r *todoMongoRepository) GetTodo(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(todoCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var todo model.Todo
	if err := result.Decode(&todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *todoMongoRepository) ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.db.Collection(todoCollection).Find(ctx, bson.M{"owner_id": ownerObjectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []*model.Todo
	for cursor.Next(ctx) {
		var todo model.Todo
		if err := cursor.Decode(&todo); err != nil {
			return nil, err
		}
		todos = append(todos, &todo)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *todoMongoRepository) UpdateTodo(
	ctx context.Context,
	id, ownerID string,
	params UpdateTodoParams,
) (*model.Todo, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{
		"completed":    params.Completed,
		"completed_at": params.CompletedAt,
		"updated_at":   time.Now(),
	}
	if params.Text != nil {
		updateMap["text"] = *params.Text
	}

	result := r.db.Collection(todoCollection).FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var todo model.Todo
	if err := result.Decode(&todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *todoMongoRepository) DeleteTodo(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(todoCollection).FindOneAndDelete(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var todo model.Todo
	if err := result.Decode(&todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

func ownedFilter(id, ownerID string) (bson.M, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	return bson.M{"_id": objectID, "owner_id": ownerObjectID}, nil
}
