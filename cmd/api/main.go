package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/mashup/internal/adapters/http"
	"github.com/samirrijal/mashup/internal/adapters/news"
	"github.com/samirrijal/mashup/internal/adapters/postgres"
	"github.com/samirrijal/mashup/internal/adapters/sqlite"
	"github.com/samirrijal/mashup/internal/adapters/valkey"
	"github.com/samirrijal/mashup/internal/core/ports"
	"github.com/samirrijal/mashup/internal/core/usecases"
	"github.com/samirrijal/mashup/internal/pkg/config"
	"github.com/samirrijal/mashup/internal/pkg/logging"
	"github.com/samirrijal/mashup/internal/pkg/metrics"
	"github.com/samirrijal/mashup/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("mashup-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Places store
	places, closeStore, err := openPlaces(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer closeStore()

	// Valkey-backed rate limiter (optional)
	var cache *valkey.Storage
	if cfg.Valkey.Addr != "" {
		cache, err = valkey.New(cfg.Valkey.Addr, "mashup:limiter:")
		if err != nil {
			slog.Warn("valkey unavailable, rate limiting in memory", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// Article feed
	feed, err := news.NewClient(news.Config{
		FeedURL:     cfg.News.FeedURL,
		FallbackURL: cfg.News.FallbackURL,
		Timeout:     cfg.News.Timeout,
	})
	if err != nil {
		log.Fatalf("news client: %v", err)
	}

	if cfg.Maps.APIKey == "" {
		slog.Warn("API_KEY not set, the map page will return 500")
	}

	deps := &http.Dependencies{
		Places:         usecases.NewPlaceService(places),
		Articles:       usecases.NewArticleService(feed),
		Cache:          cache,
		MapsAPIKey:     cfg.Maps.APIKey,
		StaticDir:      cfg.Server.StaticDir,
		HandlerTimeout: cfg.Server.HandlerTimeout,
		RateLimit:      cfg.Server.RateLimit,
		Version:        version,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024, // GraphQL queries are small
		AppName:      "Mashup",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "driver", cfg.Database.Driver, "version", version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// openPlaces connects the places store selected by database.driver.
func openPlaces(ctx context.Context, cfg config.DatabaseConfig) (ports.PlaceRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DSN(), cfg.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		go reportPoolStats(ctx, db)
		return postgres.NewPlaceRepo(db), db.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewPlaceRepo(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Pool.Stat())
		}
	}
}
