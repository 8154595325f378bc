package usecase

import (
	"context"

	"github.com/luciancic/todo-api/internal/model"
	"github.com/luciancic/todo-api/internal/repository"
)

// UserUsecase defines the interface for user-related use cases.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
}

type userUsecase struct {
	userRepo repository.UserRepository
}

func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx)
}
