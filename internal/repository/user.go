// Package repository implements the data access layer for the blog service.
package repository

import (
	"context"
	"errors"
	"strings"

	"tastetrip/internal/cache"
	"tastetrip/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernameWithPosts(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user carries the email, so callers can
// distinguish "absent" from storage failure.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsernameWithPosts loads a profile and its posts newest first. The
// anonymous-read path is cached; profile edits invalidate by username.
func (r *userRepository) GetByUsernameWithPosts(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	key := cache.ProfileKey(username)

	err := cache.Aside(ctx, key, &user, cache.ProfileTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Posts", func(db *gorm.DB) *gorm.DB {
				return db.Order("date_posted DESC")
			}).
			Where("username = ?", username).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", username)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		switch uniqueViolationColumn(err) {
		case "username":
			return models.NewConflictError("This username is already taken.")
		case "email":
			return models.NewConflictError("An account with this email already exists.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, user.Username)
	return nil
}

// uniqueViolationColumn reports which unique column a constraint violation
// names, or "" when err is not a unique-constraint violation. Both sqlite
// ("UNIQUE constraint failed: users.username") and postgres ("duplicate key
// value violates unique constraint \"uni_users_username\"") include the
// column in the message.
func uniqueViolationColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique constraint") &&
		!strings.Contains(msg, "duplicate key") &&
		!strings.Contains(msg, "constraint failed") {
		return ""
	}
	if strings.Contains(msg, "username") {
		return "username"
	}
	return "email"
}
