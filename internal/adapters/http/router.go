package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/samirrijal/mashup/internal/pkg/metrics"
)

// SetupRoutes registers the page, JSON, GraphQL and operational routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Request ID, then a request-scoped logger carrying it
	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Prometheus metrics
	app.Use(metrics.Middleware())

	// Nothing served here may be cached
	app.Use(NoCacheMiddleware())

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if deps.Version != "" {
			c.Set("X-API-Version", deps.Version)
		}
		return c.Next()
	})

	// Health, readiness and metrics skip compression and rate limiting
	app.Get("/metrics", metrics.Handler())
	app.Get("/health", HealthHandler(deps))
	app.Get("/ready", ReadyHandler(deps))

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	if deps.RateLimit > 0 {
		app.Use(limiter.New(limiterConfig(deps)))
	}

	// Map page and front-end assets
	app.Get("/", IndexHandler(deps))
	if deps.StaticDir != "" {
		app.Static("/static", deps.StaticDir)
	}

	// JSON API, bounded per request
	perRequest := deps.handlerTimeout()
	app.Get("/articles", timeout.NewWithContext(ArticlesHandler(deps), perRequest))
	app.Get("/search", timeout.NewWithContext(SearchHandler(deps), perRequest))
	app.Get("/update", timeout.NewWithContext(UpdateHandler(deps), perRequest))

	// GraphQL
	app.Post("/graphql", timeout.NewWithContext(GraphQLHandler(deps), perRequest))

	// API documentation (Swagger UI)
	SetupDocs(app)
}

// limiterConfig allows deps.RateLimit requests per minute per client IP,
// shared across instances through Valkey when it is configured.
func limiterConfig(deps *Dependencies) limiter.Config {
	cfg := limiter.Config{
		Max:        deps.RateLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}
	if deps.Cache != nil {
		cfg.Storage = deps.Cache
	}
	return cfg
}
