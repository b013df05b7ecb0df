package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapi/internal/model"
)

// UserRepository defines user and token-list persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByToken resolves the user whose id matches and whose live token
	// list still contains the exact {access, token} pair. A token that was
	// pulled on logout no longer resolves, even if its signature verifies.
	FindByToken(ctx context.Context, id uuid.UUID, token string) (*model.User, error)
	AppendToken(ctx context.Context, token *model.AuthToken) error
	RemoveToken(ctx context.Context, userID uuid.UUID, token string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByToken(ctx context.Context, id uuid.UUID, token string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN auth_tokens ON auth_tokens.user_id = users.id").
		Where("users.id = ? AND auth_tokens.access = ? AND auth_tokens.token = ?",
			id, model.TokenAccessAuth, token).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AppendToken(ctx context.Context, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// RemoveToken deletes by value equality so other sessions of the same user
// keep their tokens.
func (r *userRepository) RemoveToken(ctx context.Context, userID uuid.UUID, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND access = ? AND token = ?", userID, model.TokenAccessAuth, token).
		Delete(&model.AuthToken{}).Error
}
