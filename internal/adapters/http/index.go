package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/mashup/internal/core/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// IndexHandler renders the map page with the maps API key injected. A missing
// key is reported per request so the JSON endpoints keep working without it.
func IndexHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.MapsAPIKey == "" {
			return serviceError(c, fmt.Errorf("API_KEY not set: %w", domain.ErrNotConfigured))
		}

		var buf bytes.Buffer
		if err := indexTemplate.Execute(&buf, struct{ APIKey string }{deps.MapsAPIKey}); err != nil {
			return serviceError(c, fmt.Errorf("render index: %w", err))
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	}
}
