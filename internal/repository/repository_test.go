package repository

import (
	"context"
	"testing"
	"time"

	"tastetrip/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an isolated in-memory sqlite database with the schema
// migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := models.NewUser(username, email, "$2a$10$notarealhashnotarealhashnotarealhash")
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, user *models.User, title, content string, postedAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:      title,
		Content:    content,
		DatePosted: postedAt,
		Thumbnail:  models.DefaultThumbnail,
		UserID:     user.ID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func testCtx() context.Context {
	return context.Background()
}
