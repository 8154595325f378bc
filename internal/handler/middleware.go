package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/luciancic/todo-api/internal/model"
	"github.com/luciancic/todo-api/internal/payload"
	"github.com/luciancic/todo-api/internal/usecase"
)

// AuthTokenHeader is the header carrying the token on protected
// routes, and the header the token is returned in on register/login.
const AuthTokenHeader = "x-auth"

type userContextKey struct{}
type tokenContextKey struct{}

// UserFromContext returns the authenticated user attached by
// Authenticate.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*model.User)
	return user, ok
}

// TokenFromContext returns the raw token string the request
// authenticated with.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok
}

// Authenticate resolves the x-auth header to a user before the route
// handler runs. Missing, malformed, and revoked tokens all produce the
// 401 here; route handlers never see an unauthenticated request.
func Authenticate(authUsecase usecase.AuthUsecase, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AuthTokenHeader)
			if token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, payload.NewErrorResponse("missing auth token"))
				return
			}

			user, err := authUsecase.Authenticate(r.Context(), token)
			if err != nil {
				logger.Debug().Err(err).Msg("authentication failed")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, payload.NewErrorResponse("invalid auth token"))
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			ctx = context.WithValue(ctx, tokenContextKey{}, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs one line per request with method, path, status
// and duration.
func RequestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
