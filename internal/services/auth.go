package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamerzo/gamerzo-backend/internal/logger"
	"github.com/gamerzo/gamerzo-backend/internal/models"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash, username string) (*models.UserDB, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
	}
}

// Register creates a new user with a bcrypt-hashed password and returns
// its public view. The password hash never leaves the service.
func (svc *AuthService) Register(ctx context.Context, email, password, username string) (*models.User, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, email, string(hashedPassword), username)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}
	if user == nil {
		// Lost the insert race to a concurrent registration with the
		// same email.
		logger.Log.Errorw("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	return user.Public(), nil
}

// Login authenticates a user by email and password and returns its public
// view.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return nil, ErrInvalidCredentials
	}

	return user.Public(), nil
}
