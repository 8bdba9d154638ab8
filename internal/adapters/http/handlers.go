package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/pkg/metrics"
)

// ArticlesHandler returns news articles for a postal or geographic code,
// keyed by the code: {"<geo>": [...]}.
func ArticlesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		geo := c.Query("geo")
		if geo == "" {
			return errBadRequest(c, "missing geo")
		}

		articles, err := deps.Articles.Lookup(c.UserContext(), geo)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(articles)
	}
}

// SearchHandler matches places by city, state or postal code prefix.
func SearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return errBadRequest(c, "missing q")
		}

		places, err := deps.Places.Search(c.UserContext(), q)
		if err != nil {
			return serviceError(c, err)
		}

		metrics.PlacesReturned.WithLabelValues("search").Observe(float64(len(places)))
		return c.JSON(places)
	}
}

// UpdateHandler returns up to ten distinct towns inside the map viewport
// bounded by the sw and ne corners.
func UpdateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, msg := parseViewport(c.Query("sw"), c.Query("ne"))
		if msg != "" {
			return errBadRequest(c, msg)
		}

		places, err := deps.Places.InView(c.UserContext(), b)
		if err != nil {
			return serviceError(c, err)
		}

		metrics.PlacesReturned.WithLabelValues("update").Observe(float64(len(places)))
		return c.JSON(places)
	}
}

// parseViewport validates both corners before any query runs. It returns a
// non-empty message naming the first bad parameter.
func parseViewport(sw, ne string) (domain.Bounds, string) {
	if sw == "" {
		return domain.Bounds{}, "missing sw"
	}
	if ne == "" {
		return domain.Bounds{}, "missing ne"
	}
	swPt, err := domain.ParseGeoPoint(sw)
	if err != nil {
		return domain.Bounds{}, "invalid sw"
	}
	nePt, err := domain.ParseGeoPoint(ne)
	if err != nil {
		return domain.Bounds{}, "invalid ne"
	}
	return domain.NewBounds(swPt, nePt), ""
}
