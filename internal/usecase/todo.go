package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/luciancic/todo-api/internal/model"
	"github.com/luciancic/todo-api/internal/repository"
)

// TodoUsecase defines the interface for todo-related use cases. Every
// operation is scoped to the owner; a todo owned by someone else is
// indistinguishable from a missing one.
type TodoUsecase interface {
	CreateTodo(ctx context.Context, ownerID string, params CreateTodoParams) (*model.Todo, error)
	GetTodo(ctx context.Context, id, ownerID string) (*model.Todo, error)
	ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error)
	UpdateTodo(ctx context.Context, id, ownerID string, params UpdateTodoParams) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id, ownerID string) (*model.Todo, error)
}

// CreateTodoParams defines the parameters for creating a todo.
type CreateTodoParams struct {
	Text string
}

// UpdateTodoParams defines the caller-settable fields of a todo.
// Only the fields that are not nil are taken into account.
type UpdateTodoParams struct {
	Text      *string
	Completed *bool
}

var (
	ErrInvalidID    = errors.New("invalid todo id")
	ErrTodoNotFound = errors.New("todo not found")
)

type todoUsecase struct {
	todoRepo repository.TodoRepository
}

func NewTodoUsecase(todoRepo repository.TodoRepository) TodoUsecase {
	return &todoUsecase{todoRepo: todoRepo}
}

func (u *todoUsecase) CreateTodo(
	ctx context.Context,
	ownerID string,
	params CreateTodoParams,
) (*model.Todo, error) {
	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrInvalidID
	}

	todo, err := u.todoRepo.CreateTodo(ctx, &model.Todo{
		Text:      params.Text,
		Completed: false,
		OwnerID:   ownerObjectID,
	})
	if err != nil {
		return nil, err
	}

	return todo, nil
}

func (u *todoUsecase) GetTodo(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	todo, err := u.todoRepo.GetTodo(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}

		return nil, err
	}

	return todo, nil
}

func (u *todoUsecase) ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	return u.todoRepo.ListTodos(ctx, ownerID)
}

// UpdateTodo applies a partial update of text and completion state.
// Setting completed to true stamps CompletedAt with the current time;
// an absent or false completed forces the pair back to false/nil no
// matter what else was submitted.
func (u *todoUsecase) UpdateTodo(
	ctx context.Context,
	id, ownerID string,
	params UpdateTodoParams,
) (*model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	repoParams := repository.UpdateTodoParams{
		Text:      params.Text,
		Completed: false,
	}
	if params.Completed != nil && *params.Completed {
		now := time.Now()
		repoParams.Completed = true
		repoParams.CompletedAt = &now
	}

	todo, err := u.todoRepo.UpdateTodo(ctx, id, ownerID, repoParams)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}

		return nil, err
	}

	return todo, nil
}

func (u *todoUsecase) DeleteTodo(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	todo, err := u.todoRepo.DeleteTodo(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}

		return nil, err
	}

	return todo, nil
}

// validateID rejects malformed document identifiers before any
// database round-trip happens.
func validateID(id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}

	return nil
}
