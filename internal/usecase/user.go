package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/example/ec-commerce/internal/auth"
	"github.com/example/ec-commerce/internal/domain/user"
	"github.com/example/ec-commerce/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserUseCase handles signup and login. An account starts with a zero point
// balance; points only move through the payment use case afterwards.
type UserUseCase struct {
	users repository.UserRepository
}

func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Signup registers an account with a hashed password and an empty balance.
func (uc *UserUseCase) Signup(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" {
		return nil, user.ErrInvalidUser
	}
	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u, err := user.New(uuid.New().String(), email, hash)
	if err != nil {
		return nil, err
	}
	return uc.users.Save(ctx, u)
}

// Login verifies the credentials and returns the account. Lookup failures
// and bad passwords collapse into one error so callers cannot probe for
// registered emails.
func (uc *UserUseCase) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, userID string) (*user.User, error) {
	return uc.users.FindByID(ctx, userID)
}
