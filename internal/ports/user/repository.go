package user

import (
	"context"
	"errors"

	"sns/internal/core/user"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// DTOها برای UseCase
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
