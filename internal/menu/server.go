package menu

import (
	"fmt"
	"sync"
	"time"

	"tastetrip/internal/config"
	"tastetrip/internal/middleware"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds the menu service's dependencies: the injected read-only
// catalog and the request validator. There is no persistence layer.
type Server struct {
	config    *config.Config
	catalog   *Catalog
	validator *requestValidator
}

// NewServer loads the catalog (from MENU_FILE or the embedded default) and
// returns a ready server.
func NewServer(cfg *config.Config) (*Server, error) {
	catalog, err := LoadCatalog(cfg.MenuFile)
	if err != nil {
		return nil, fmt.Errorf("catalog load failed: %w", err)
	}
	return NewServerWithCatalog(cfg, catalog), nil
}

// NewServerWithCatalog creates a Server using an already-loaded catalog.
// Use this in tests.
func NewServerWithCatalog(cfg *config.Config, catalog *Catalog) *Server {
	return &Server{
		config:    cfg,
		catalog:   catalog,
		validator: newRequestValidator(),
	}
}

// NewApp builds the Fiber app with middleware and routes configured.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "TasteTrip API",
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

// SetupMiddleware configures middleware for the Fiber app. CORS origins are
// configurable; the default mirrors the original wide-open storefront but can
// be locked down per deployment.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	promOnce.Do(func() { prom = fiberprometheus.New("tastetrip-menu") })
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		// Credentials cannot be combined with a wildcard origin.
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the menu service.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "up",
			"time":   time.Now(),
		})
	})

	api := app.Group("/api")
	api.Get("/menu", s.GetMenu)
	api.Post("/order", s.PlaceOrder)
}
