package http

import "github.com/gofiber/fiber/v2"

// NoCacheMiddleware forbids client and proxy caching on every response,
// overriding anything a handler or the static file server set.
func NoCacheMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
		c.Set(fiber.HeaderExpires, "0")
		c.Set(fiber.HeaderPragma, "no-cache")

		return err
	}
}
