// Package seed provides helpers to create test and demo data for the blog
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tastetrip/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user gets, so seeded accounts
// can be logged into during development.
const DefaultPassword = "Password123"

var tagPool = []string{"pizza", "pasta", "salad", "burger", "dessert", "travel", "review", "recipe"}

// Seeder creates demo users and posts.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes all seeded data.
func (s *Seeder) ClearAll() error {
	if err := s.db.Exec("DELETE FROM posts").Error; err != nil {
		return err
	}
	return s.db.Exec("DELETE FROM users").Error
}

// SeedUsers creates n users with unique usernames and emails.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		if len(username) > 20 {
			username = username[:20]
		}
		user := models.NewUser(username, fmt.Sprintf("%d_%s", i, gofakeit.Email()), string(hash))
		user.Bio = gofakeit.Sentence(10)
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts creates n posts spread across the given users with creation
// dates scattered over the past 90 days.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attach posts to")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[r.Intn(len(users))]
		post := s.BuildPost(author, r)
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// BuildPost constructs a post for the author without persisting it.
func (s *Seeder) BuildPost(author *models.User, r *rand.Rand) *models.Post {
	daysBack := r.Intn(90)
	minsBack := r.Intn(24 * 60)
	datePosted := time.Now().UTC().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)

	tags := make([]string, 0, 2)
	for _, t := range []string{tagPool[r.Intn(len(tagPool))], tagPool[r.Intn(len(tagPool))]} {
		if len(tags) == 0 || tags[0] != t {
			tags = append(tags, t)
		}
	}

	title := gofakeit.Sentence(5)
	if len(title) > 100 {
		title = title[:100]
	}

	return &models.Post{
		Title:      title,
		Content:    gofakeit.Paragraph(2, 4, 8, "\n\n"),
		DatePosted: datePosted,
		Tags:       strings.Join(tags, ", "),
		Thumbnail:  fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
		UserID:     author.ID,
	}
}
