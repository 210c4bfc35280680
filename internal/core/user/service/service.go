package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"sns/internal/core/errs"
	userEntity "sns/internal/core/user"
	userPort "sns/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	cost           int
}

func NewUserService(repo userPort.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		cost:           bcrypt.DefaultCost,
	}
}

// WithHashCost sets the bcrypt cost used for new passwords.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, username, password string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.Validation("Username and password are required")
	}
	if utf8.RuneCountInString(username) > userEntity.MaxUsernameLength {
		return nil, errs.Validation("Username too long (max 150 characters)")
	}
	if len(password) > userEntity.MaxPasswordBytes {
		return nil, errs.Validation("Password too long (max 72 bytes)")
	}

	_, err := s.UserRepository.FindByUsername(ctx, username)
	if err == nil {
		return nil, errs.Conflict("Username already exists")
	}
	if !errors.Is(err, userPort.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errs.Validation("Password too long (max 72 bytes)")
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Password: string(hashedPassword),
	}

	u, err := s.UserRepository.Create(ctx, user)
	if errors.Is(err, userPort.ErrDuplicateUsername) {
		// lost a race with a concurrent signup
		return nil, errs.Conflict("Username already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.Logger.Info("user registered", zap.String("userID", u.ID.String()), zap.String("username", u.Username))
	return &userPort.UserDTO{ID: u.ID.String(), Username: u.Username}, nil
}

// LoginUser checks the credentials and returns the account on success.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.Validation("Username and password are required")
	}

	user, err := s.UserRepository.FindByUsername(ctx, username)
	if errors.Is(err, userPort.ErrUserNotFound) {
		s.Logger.Info("login for unknown user", zap.String("username", username))
		return nil, errs.InvalidCredentials("Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	// no stored hash can match a password bcrypt refuses to hash
	if len(password) > userEntity.MaxPasswordBytes {
		return nil, errs.InvalidCredentials("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.Logger.Info("invalid password", zap.String("username", username))
		return nil, errs.InvalidCredentials("Invalid credentials")
	}

	return &userPort.UserDTO{ID: user.ID.String(), Username: user.Username}, nil
}

// GetUser returns the account with the given id.
func (s *UserService) GetUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	user, err := s.UserRepository.FindByID(ctx, id)
	if errors.Is(err, userPort.ErrUserNotFound) {
		return nil, errs.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &userPort.UserDTO{ID: user.ID.String(), Username: user.Username}, nil
}
