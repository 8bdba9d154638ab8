package http

import (
	"time"

	"github.com/samirrijal/mashup/internal/adapters/valkey"
	"github.com/samirrijal/mashup/internal/core/usecases"
)

// Dependencies holds all services and settings needed by HTTP handlers.
type Dependencies struct {
	Places   *usecases.PlaceService
	Articles *usecases.ArticleService

	// Cache backs the rate limiter when set; nil keeps counters in memory.
	Cache *valkey.Storage

	MapsAPIKey     string
	StaticDir      string
	HandlerTimeout time.Duration
	RateLimit      int
	Version        string
}

func (d *Dependencies) handlerTimeout() time.Duration {
	if d.HandlerTimeout <= 0 {
		return 15 * time.Second
	}
	return d.HandlerTimeout
}
