// Package app wires configuration, database, repositories, usecases
// and handlers into a running HTTP server.
package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/luciancic/todo-api/internal/auth"
	"github.com/luciancic/todo-api/internal/config"
	"github.com/luciancic/todo-api/internal/database"
	"github.com/luciancic/todo-api/internal/handler"
	"github.com/luciancic/todo-api/internal/repository"
	"github.com/luciancic/todo-api/internal/usecase"
	"github.com/luciancic/todo-api/internal/validation"
)

// App is the assembled service.
type App struct {
	cfg         *config.Config
	logger      *zerolog.Logger
	mongoClient *mongo.Client
	server      *http.Server
}

// New connects to the database and builds the full handler chain.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)

	validator, err := validation.New()
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserMongoRepository(ctx, logger, db)
	todoRepo := repository.NewTodoMongoRepository(ctx, logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret)
	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth)
	userUsecase := usecase.NewUserUsecase(userRepo)
	todoUsecase := usecase.NewTodoUsecase(todoRepo)

	userHandler := handler.NewUserHandler(authUsecase, userUsecase, validator, logger)
	todoHandler := handler.NewTodoHandler(todoUsecase, validator, logger)

	router := newRouter(logger, authUsecase, userHandler, todoHandler)

	return &App{
		cfg:         cfg,
		logger:      logger,
		mongoClient: client,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
	}, nil
}

func newRouter(
	logger *zerolog.Logger,
	authUsecase usecase.AuthUsecase,
	userHandler *handler.UserHandler,
	todoHandler *handler.TodoHandler,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	authenticate := handler.Authenticate(authUsecase, logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("todo-api"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/", userHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", userHandler.Me)
			r.Delete("/me/token", userHandler.Logout)
		})
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)
		r.Get("/{id}", todoHandler.Get)
		r.Patch("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Delete)
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
// and disconnects from the database.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server started")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return a.mongoClient.Disconnect(shutdownCtx)
}
