package repository

import (
	"context"
	"errors"

	"tastetrip/internal/cache"
	"tastetrip/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Listings are
// unpaginated and always ordered newest first.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	// The author's cached profile embeds their post list.
	if username := r.authorUsername(ctx, post.UserID); username != "" {
		cache.InvalidateProfile(ctx, username)
	}
	return nil
}

// authorUsername resolves a user id to its username for cache invalidation.
// Best effort: an empty result simply means no profile key to invalidate.
func (r *postRepository) authorUsername(ctx context.Context, userID uint) string {
	var user models.User
	if err := r.db.WithContext(ctx).Select("username").First(&user, userID).Error; err != nil {
		return ""
	}
	return user.Username
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("User").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("date_posted DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Search matches a case-insensitive substring against title or content.
// LOWER(...) LIKE is used instead of ILIKE so the same query runs on both
// sqlite and postgres.
func (r *postRepository) Search(ctx context.Context, query string) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", like, like).
		Order("date_posted DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	username := post.User.Username
	if username == "" {
		username = r.authorUsername(ctx, post.UserID)
	}
	if username != "" {
		cache.InvalidateProfile(ctx, username)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	// Resolve the author before the row disappears.
	var post models.Post
	haveAuthor := r.db.WithContext(ctx).Select("user_id").First(&post, id).Error == nil

	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	if haveAuthor {
		if username := r.authorUsername(ctx, post.UserID); username != "" {
			cache.InvalidateProfile(ctx, username)
		}
	}
	return nil
}
