package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/luciancic/todo-api/internal/payload"
	"github.com/luciancic/todo-api/internal/usecase"
	"github.com/luciancic/todo-api/internal/validation"
)

// TodoHandler serves the /todos routes. All of them sit behind the
// Authenticate middleware, so a user is always present on the context.
type TodoHandler struct {
	todoUsecase usecase.TodoUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewTodoHandler(
	todoUsecase usecase.TodoUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *TodoHandler {
	return &TodoHandler{
		todoUsecase: todoUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	var req payload.CreateTodoRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse("failed to decode request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse(err.Error()))
		return
	}

	todo, err := h.todoUsecase.CreateTodo(r.Context(), user.ID.Hex(), usecase.CreateTodoParams{
		Text: req.Text,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create todo")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse("failed to create todo"))
		return
	}

	render.JSON(w, r, payload.NewTodoResponse(todo))
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	todos, err := h.todoUsecase.ListTodos(r.Context(), user.ID.Hex())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list todos")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse("failed to list todos"))
		return
	}

	render.JSON(w, r, payload.NewTodoListResponse(todos))
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	todo, err := h.todoUsecase.GetTodo(r.Context(), chi.URLParam(r, "id"), user.ID.Hex())
	if err != nil {
		h.renderTodoError(w, r, err, "failed to get todo")
		return
	}

	render.JSON(w, r, payload.NewTodoResponse(todo))
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	var req payload.UpdateTodoRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse("failed to decode request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse(err.Error()))
		return
	}

	todo, err := h.todoUsecase.UpdateTodo(r.Context(), chi.URLParam(r, "id"), user.ID.Hex(), usecase.UpdateTodoParams{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		h.renderTodoError(w, r, err, "failed to update todo")
		return
	}

	render.JSON(w, r, payload.NewTodoResponse(todo))
}

// Delete removes the todo and returns the removed document.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	todo, err := h.todoUsecase.DeleteTodo(r.Context(), chi.URLParam(r, "id"), user.ID.Hex())
	if err != nil {
		h.renderTodoError(w, r, err, "failed to delete todo")
		return
	}

	render.JSON(w, r, payload.NewTodoResponse(todo))
}

// renderTodoError maps usecase errors to HTTP codes: malformed ids are
// 400, and a todo that is missing or owned by someone else is 404 in
// both cases, so existence never leaks across accounts.
func (h *TodoHandler) renderTodoError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse("invalid todo id"))
	case errors.Is(err, usecase.ErrTodoNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, payload.NewErrorResponse("todo not found"))
	default:
		h.logger.Error().Err(err).Msg(msg)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse(msg))
	}
}
