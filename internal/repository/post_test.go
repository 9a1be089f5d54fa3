package repository

import (
	"testing"
	"time"

	"tastetrip/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice", "alice@example.com")

	post := createTestPost(t, db, user, "Pasta Carbonara in Rome", "Creamy and rich.", time.Now().UTC())

	got, err := repo.GetByID(testCtx(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pasta Carbonara in Rome", got.Title)
	assert.Equal(t, "alice", got.User.Username, "author should be preloaded")
}

func TestPostGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(testCtx(), 12345)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostList_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice", "alice@example.com")

	now := time.Now().UTC()
	createTestPost(t, db, user, "Monday", "a", now.Add(-3*24*time.Hour))
	createTestPost(t, db, user, "Wednesday", "b", now.Add(-24*time.Hour))
	createTestPost(t, db, user, "Thursday", "c", now)

	posts, err := repo.List(testCtx())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "Thursday", posts[0].Title)
	assert.Equal(t, "Wednesday", posts[1].Title)
	assert.Equal(t, "Monday", posts[2].Title)
}

func TestPostSearch_CaseInsensitiveSubstring(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice", "alice@example.com")

	now := time.Now().UTC()
	createTestPost(t, db, user, "Pasta Carbonara in Rome", "Creamy and rich.", now)
	createTestPost(t, db, user, "Street Food Tour", "Try the carbonara stand on Via Roma.", now.Add(-time.Hour))
	createTestPost(t, db, user, "Best Beaches", "Sun and surf.", now.Add(-2*time.Hour))

	tests := []struct {
		name       string
		query      string
		wantTitles []string
	}{
		{"matches title", "Carbonara", []string{"Pasta Carbonara in Rome", "Street Food Tour"}},
		{"lowercase query", "carbonara", []string{"Pasta Carbonara in Rome", "Street Food Tour"}},
		{"matches content only", "surf", []string{"Best Beaches"}},
		{"no matches", "sushi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.Search(testCtx(), tt.query)
			require.NoError(t, err)
			titles := make([]string, 0, len(posts))
			for _, p := range posts {
				titles = append(titles, p.Title)
			}
			if tt.wantTitles == nil {
				assert.Empty(t, titles)
			} else {
				assert.Equal(t, tt.wantTitles, titles)
			}
		})
	}
}

func TestPostUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice", "alice@example.com")
	post := createTestPost(t, db, user, "Draft", "wip", time.Now().UTC())

	post.Title = "Final Title"
	post.Content = "Done."
	require.NoError(t, repo.Update(testCtx(), post))

	got, err := repo.GetByID(testCtx(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final Title", got.Title)
	assert.Equal(t, "Done.", got.Content)
}

func TestPostDelete_RemovesExactlyOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice", "alice@example.com")

	keep := createTestPost(t, db, user, "Keep Me", "stays", time.Now().UTC())
	drop := createTestPost(t, db, user, "Drop Me", "goes", time.Now().UTC())

	require.NoError(t, repo.Delete(testCtx(), drop.ID))

	_, err := repo.GetByID(testCtx(), drop.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "delete must remove the row, not soft-delete it")

	got, err := repo.GetByID(testCtx(), keep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep Me", got.Title)
}
