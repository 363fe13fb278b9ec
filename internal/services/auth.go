package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogi/blogi-api/internal/logger"
	"github.com/blogi/blogi-api/internal/models"
	"github.com/blogi/blogi-api/internal/validation"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error)
	Delete(ctx context.Context, id int64) error
}

// PostRemover deletes posts in bulk when their owner is removed.
type PostRemover interface {
	DeleteByUserID(ctx context.Context, userID int64) error
}

// TokenIssuer defines an interface for generating bearer tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, username string, userID int64) (string, error)
}

// AuthService handles registration, login, and account deletion.
type AuthService struct {
	reader UserReader
	writer UserWriter
	posts  PostRemover
	jwt    TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, posts PostRemover, jwt TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		posts:  posts,
		jwt:    jwt,
	}
}

// Register validates the input, checks uniqueness of username and email,
// and stores a new user with a bcrypt hash of the password.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.UserDB, error) {
	username, detail := validation.Username(username)
	if detail != nil {
		return nil, NewValidationError(*detail)
	}
	email, detail = validation.Email(email)
	if detail != nil {
		return nil, NewValidationError(*detail)
	}
	if detail := validation.Password(password); detail != nil {
		return nil, NewValidationError(*detail)
	}

	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, username, email, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a bearer token. Unknown username
// and wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.Username, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return token, nil
}

// DeleteUser removes a user account and all posts it owns. The posts are
// deleted first so a failure never leaves orphaned rows behind a missing user.
func (svc *AuthService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := svc.posts.DeleteByUserID(ctx, userID); err != nil {
		logger.Log.Errorw("failed to delete user posts", "user_id", userID, "err", err)
		return err
	}
	if err := svc.writer.Delete(ctx, userID); err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", userID, "err", err)
		return err
	}

	return nil
}
