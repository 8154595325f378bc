package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/luciancic/todo-api/internal/handler"
	"github.com/luciancic/todo-api/internal/model"
	"github.com/luciancic/todo-api/internal/payload"
	"github.com/luciancic/todo-api/internal/usecase"
	"github.com/luciancic/todo-api/internal/validation"
)

type mockUserUsecase struct {
	ListUsersFunc func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return m.ListUsersFunc(ctx)
}

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()

	v, err := validation.New()
	require.NoError(t, err)
	return v
}

func TestRegisterHandler(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("success returns user and x-auth header", func(t *testing.T) {
		authUC := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, params usecase.RegisterParams) (*model.User, string, error) {
				assert.Equal(t, "a@x.com", params.Email)
				assert.Equal(t, "p1secret", params.Password)
				return &model.User{ID: userID, Email: params.Email, PasswordHash: "hash"}, "issued-token", nil
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		body, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "p1secret"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "issued-token", w.Header().Get(handler.AuthTokenHeader))

		var resp payload.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID.Hex(), resp.ID)
		assert.Equal(t, "a@x.com", resp.Email)
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("malformed email", func(t *testing.T) {
		authUC := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, params usecase.RegisterParams) (*model.User, string, error) {
				t.Fatal("usecase must not be called for an invalid payload")
				return nil, "", nil
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		body, _ := json.Marshal(map[string]string{"email": "not-an-email", "password": "p1secret"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		authUC := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, params usecase.RegisterParams) (*model.User, string, error) {
				t.Fatal("usecase must not be called for an invalid payload")
				return nil, "", nil
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		body, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "p1"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email is 400 not 409", func(t *testing.T) {
		authUC := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, params usecase.RegisterParams) (*model.User, string, error) {
				return nil, "", usecase.ErrUserAlreadyExists
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		body, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "p1secret"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("success", func(t *testing.T) {
		authUC := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, params usecase.LoginParams) (*model.User, string, error) {
				return &model.User{ID: userID, Email: params.Email}, "fresh-token", nil
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		body, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "p1secret"})
		req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fresh-token", w.Header().Get(handler.AuthTokenHeader))
	})

	t.Run("bad credentials are 400 not 401", func(t *testing.T) {
		authUC := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, params usecase.LoginParams) (*model.User, string, error) {
				return nil, "", usecase.ErrInvalidCredentials
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		body, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Header().Get(handler.AuthTokenHeader))
	})
}

func TestMeHandler(t *testing.T) {
	userID := bson.NewObjectID()

	authUC := &mockAuthUsecase{
		AuthenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
			return &model.User{ID: userID, Email: "a@x.com", PasswordHash: "hash"}, nil
		},
	}

	h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(handler.AuthTokenHeader, "good-token")
	w := httptest.NewRecorder()

	handler.Authenticate(authUC, nopLogger())(http.HandlerFunc(h.Me)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp payload.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID.Hex(), resp.ID)
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestLogoutHandler(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("removes the token used for this request", func(t *testing.T) {
		var removedToken string

		authUC := &mockAuthUsecase{
			AuthenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
				return &model.User{ID: userID, Email: "a@x.com"}, nil
			},
			LogoutFunc: func(ctx context.Context, uid, token string) error {
				assert.Equal(t, userID.Hex(), uid)
				removedToken = token
				return nil
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
		req.Header.Set(handler.AuthTokenHeader, "session-token")
		w := httptest.NewRecorder()

		handler.Authenticate(authUC, nopLogger())(http.HandlerFunc(h.Logout)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "session-token", removedToken)
	})

	t.Run("usecase failure is 400", func(t *testing.T) {
		authUC := &mockAuthUsecase{
			AuthenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
				return &model.User{ID: userID, Email: "a@x.com"}, nil
			},
			LogoutFunc: func(ctx context.Context, uid, token string) error {
				return usecase.ErrUserNotFound
			},
		}

		h := handler.NewUserHandler(authUC, &mockUserUsecase{}, newValidator(t), nopLogger())

		req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
		req.Header.Set(handler.AuthTokenHeader, "session-token")
		w := httptest.NewRecorder()

		handler.Authenticate(authUC, nopLogger())(http.HandlerFunc(h.Logout)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListUsersHandler(t *testing.T) {
	h := handler.NewUserHandler(&mockAuthUsecase{}, &mockUserUsecase{
		ListUsersFunc: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{
				{ID: bson.NewObjectID(), Email: "a@x.com", PasswordHash: "hash-a"},
				{ID: bson.NewObjectID(), Email: "b@x.com", PasswordHash: "hash-b"},
			}, nil
		},
	}, newValidator(t), nopLogger())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []payload.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.NotContains(t, w.Body.String(), "hash-a")
}
