package payload

import (
	"time"

	"github.com/luciancic/todo-api/internal/model"
)

type CreateTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateTodoRequest accepts only text and completed. Anything else in
// the request body, including an attempt to reassign ownership, is
// ignored.
type UpdateTodoRequest struct {
	Text      *string `json:"text"      validate:"omitempty,min=1"`
	Completed *bool   `json:"completed"`
}

type TodoResponse struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	OwnerID     string     `json:"ownerId"`
}

func NewTodoResponse(todo *model.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID.Hex(),
		Text:        todo.Text,
		Completed:   todo.Completed,
		CompletedAt: todo.CompletedAt,
		OwnerID:     todo.OwnerID.Hex(),
	}
}

func NewTodoListResponse(todos []*model.Todo) []TodoResponse {
	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, NewTodoResponse(todo))
	}

	return responses
}
