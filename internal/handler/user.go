package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/luciancic/todo-api/internal/payload"
	"github.com/luciancic/todo-api/internal/usecase"
	"github.com/luciancic/todo-api/internal/validation"
)

// UserHandler serves the /users routes.
type UserHandler struct {
	authUsecase usecase.AuthUsecase
	userUsecase usecase.UserUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewUserHandler(
	authUsecase usecase.AuthUsecase,
	userUsecase usecase.UserUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		authUsecase: authUsecase,
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// Register creates an account and issues the first auth token. A
// duplicate email fails with 400, same as any validation failure.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
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

	user, token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, payload.NewErrorResponse("email already in use"))
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse(err.Error()))
		return
	}

	w.Header().Set(AuthTokenHeader, token)
	render.JSON(w, r, payload.NewUserResponse(user))
}

// Login resolves credentials to a fresh token. Unknown emails and
// wrong passwords fail alike with 400.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
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

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, payload.NewErrorResponse("invalid credentials"))
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse(err.Error()))
		return
	}

	w.Header().Set(AuthTokenHeader, token)
	render.JSON(w, r, payload.NewUserResponse(user))
}

// Me echoes the authenticated caller's public fields.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	render.JSON(w, r, payload.NewUserResponse(user))
}

// Logout removes the token this request authenticated with. Other
// tokens held by the same user remain valid.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	token, ok := TokenFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, payload.NewErrorResponse("not authenticated"))
		return
	}

	if err := h.authUsecase.Logout(r.Context(), user.ID.Hex(), token); err != nil {
		h.logger.Error().Err(err).Msg("failed to log out user")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse("failed to log out"))
		return
	}

	render.JSON(w, r, payload.NewUserResponse(user))
}

// List returns the public fields of every user.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.ListUsers(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, payload.NewErrorResponse("failed to list users"))
		return
	}

	render.JSON(w, r, payload.NewUserListResponse(users))
}
