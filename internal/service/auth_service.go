package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todoapi/internal/auth"
	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

const bcryptCost = 10

// MySQL error code for a unique index violation.
const mysqlDuplicateEntry = 1062

// AuthService handles registration, login and session revocation.
type AuthService interface {
	// Register creates a user and opens a first session for it; the returned
	// token is already appended to the user's token list.
	Register(ctx context.Context, email, password string) (*model.User, string, error)
	// Login opens an additional session. Repeated logins accumulate tokens,
	// one per device.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// Logout removes exactly the given token from the user's token list.
	Logout(ctx context.Context, userID uuid.UUID, token string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Register creates a new user. Hashing happens here, on the single path that
// writes a plaintext password; nothing downstream ever re-hashes a stored hash.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two registrations can pass the existence check before either
		// inserts; the unique index on email settles the race.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// return the same error so callers cannot probe which emails are registered.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes a single session. Other tokens held by the user stay valid.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.users.RemoveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *authService) issueToken(ctx context.Context, user *model.User) (string, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	entry := &model.AuthToken{
		UserID: user.ID,
		Access: model.TokenAccessAuth,
		Token:  token,
	}
	if err := s.users.AppendToken(ctx, entry); err != nil {
		return "", fmt.Errorf("append token: %w", err)
	}
	return token, nil
}
