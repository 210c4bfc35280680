package database

import (
	"context"
	"errors"

	"sns/internal/core/user"
	userPort "sns/internal/ports/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, userPort.ErrDuplicateUsername
		}
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userPort.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByUsername matches the username exactly, including case.
func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userPort.ErrUserNotFound
		}
		return nil, err
	}
	if u.Username != username {
		return nil, userPort.ErrUserNotFound
	}
	return &u, nil
}
