package blog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tastetrip/internal/config"
	"tastetrip/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:      "8080",
		JWTSecret: "test-secret-key-for-handler-tests",
		DBDriver:  "sqlite",
		Env:       "test",
	}
}

// newTestApp builds a fully routed app over an isolated in-memory database.
func newTestApp(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	srv := NewServerWithDeps(testConfig(), db, nil)
	return srv, srv.NewApp(), db
}

func createUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.NewUser(username, email, string(hash))
	require.NoError(t, db.Create(user).Error)
	return user
}

// sessionFor issues a valid session cookie for the user.
func sessionFor(t *testing.T, srv *Server, user *models.User) *http.Cookie {
	t.Helper()
	token, err := srv.issueSessionToken(user.ID, user.Username)
	require.NoError(t, err)
	return &http.Cookie{Name: "session", Value: token}
}

func formRequest(path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func getRequest(path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}

// flashFrom decodes the flash cookie set on a redirect response.
func flashFrom(t *testing.T, resp *http.Response) *Flash {
	t.Helper()
	cookie := findCookie(resp.Cookies(), "flash")
	if cookie == nil || cookie.Value == "" {
		return nil
	}

	app := fiber.New()
	var f *Flash
	app.Get("/", func(c *fiber.Ctx) error {
		f = popFlash(c)
		return nil
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: cookie.Value})
	_, err := app.Test(req)
	require.NoError(t, err)
	return f
}
