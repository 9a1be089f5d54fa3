// Package blog contains the HTTP server for the form-oriented blog service:
// session auth, post CRUD, profiles and search, rendered with html templates.
package blog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"tastetrip/internal/cache"
	"tastetrip/internal/config"
	"tastetrip/internal/database"
	"tastetrip/internal/middleware"
	"tastetrip/internal/models"
	"tastetrip/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server holds all dependencies and provides handlers.
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		userRepo: repository.NewUserRepository(db),
		postRepo: repository.NewPostRepository(db),
	}
}

// Shutdown releases server resources (database pool and Redis connection).
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// NewApp builds the Fiber app with the embedded template engine and an error
// handler that renders the error page instead of raw JSON.
func (s *Server) NewApp() *fiber.App {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("blog templates missing from binary: %v", err))
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	app := fiber.New(fiber.Config{
		AppName: "TasteTrip Blog",
		Views:   engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			message := "Something went wrong."

			var appErr *models.AppError
			if errors.As(err, &appErr) {
				switch appErr.Code {
				case "NOT_FOUND":
					status = fiber.StatusNotFound
					message = appErr.Message
				case "FORBIDDEN":
					status = fiber.StatusForbidden
					message = appErr.Message
				case "UNAUTHORIZED":
					status = fiber.StatusUnauthorized
					message = appErr.Message
				}
			}
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
				message = fiberErr.Message
			}

			if status >= fiber.StatusInternalServerError {
				middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
					"error", err.Error(), "path", c.Path())
			}

			return c.Status(status).Render("error", fiber.Map{
				"Status":  status,
				"Message": message,
			})
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// The HTTP collectors live in the global prometheus registry, so they are
// created once per process even when multiple apps are constructed.
var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(s.CurrentUser())
	app.Use(middleware.ContextMiddleware())

	promOnce.Do(func() { prom = fiberprometheus.New("tastetrip-blog") })
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the blog service.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	app.Get("/", s.Index)
	app.Get("/search", s.Search)

	app.Get("/login", s.ShowLogin)
	app.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.HandleLogin)
	app.Get("/signup", s.ShowSignup)
	app.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.HandleSignup)
	app.Get("/logout", s.LoginRequired(), s.Logout)

	app.Get("/profile/:username", s.Profile)

	app.Get("/create_post", s.LoginRequired(), s.ShowCreatePost)
	app.Post("/create_post", s.LoginRequired(), s.HandleCreatePost)
	app.Get("/post/:id", s.ViewPost)
	app.Get("/post/:id/edit", s.LoginRequired(), s.ShowEditPost)
	app.Post("/post/:id/edit", s.LoginRequired(), s.HandleEditPost)
	app.Post("/post/:id/delete", s.LoginRequired(), s.DeletePost)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// render wraps c.Render, injecting the one-shot flash message and the current
// session's username so every template can show the navbar and notices.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if f := popFlash(c); f != nil {
		data["Flash"] = f
	}
	if username, ok := c.Locals("username").(string); ok && username != "" {
		data["CurrentUser"] = username
	}
	return c.Render(name, data)
}

// parsePostID extracts the :id route parameter, mapping garbage to NotFound
// the way the original surfaced unknown ids.
func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("Post", c.Params("id"))
	}
	return uint(id), nil
}
