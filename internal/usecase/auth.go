package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/luciancic/todo-api/internal/auth"
	"github.com/luciancic/todo-api/internal/model"
	"github.com/luciancic/todo-api/internal/repository"
	"github.com/luciancic/todo-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, string, error)
	Login(ctx context.Context, params LoginParams) (*model.User, string, error)
	Logout(ctx context.Context, userID, token string) error
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
}

func NewAuthUsecase(userRepo repository.UserRepository, jwtAuth auth.JWTAuthenticator) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
	}
}

// Register creates the user first and issues a token only once the
// record is durably persisted.
func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrUserAlreadyExists
		}

		return nil, "", err
	}

	token, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout removes exactly the presented token from the user's token
// set. Any other tokens the user holds stay valid.
func (u *authUsecase) Logout(ctx context.Context, userID, token string) error {
	err := u.userRepo.RemoveToken(ctx, userID, model.UserToken{
		Access: model.AccessAuth,
		Token:  token,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	return nil
}

// Authenticate resolves a raw token string to the user holding it. The
// signature is verified first; the storage lookup then requires the
// exact token to still be present, so a logged-out token fails here
// even though its signature remains valid.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := u.jwtAuth.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Access != model.AccessAuth {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.GetUserByToken(ctx, claims.UserID, model.UserToken{
		Access: claims.Access,
		Token:  token,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) issueToken(ctx context.Context, user *model.User) (string, error) {
	token, err := u.jwtAuth.GenerateToken(user.ID.Hex(), model.AccessAuth)
	if err != nil {
		return "", err
	}

	userToken := model.UserToken{
		Access: model.AccessAuth,
		Token:  token,
	}

	if err := u.userRepo.AppendToken(ctx, user.ID.Hex(), userToken); err != nil {
		return "", err
	}

	user.Tokens = append(user.Tokens, userToken)

	return token, nil
}
