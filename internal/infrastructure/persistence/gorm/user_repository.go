package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/alchemorsel/catalog/internal/domain/user"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// UserRepository implements the user store using GORM
type UserRepository struct {
	db *gorm.DB
}

var _ outbound.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user, rejecting duplicate usernames
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	var existing int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("username = ?", entity.Username()).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if existing > 0 {
		return user.ErrUserExists
	}

	model := UserToModel(entity)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	entity.AssignID(model.ID)
	return nil
}

// Update saves the mutable user fields
func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"password_hash": entity.PasswordHash(),
			"is_active":     entity.IsActive(),
			"last_login_at": entity.LastLoginAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("update user %d: %w", entity.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return ModelToUser(&model), nil
}

// FindByUsername finds a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return ModelToUser(&model), nil
}
