package ports

import (
	"context"

	"github.com/samirrijal/mashup/internal/core/domain"
)

// ArticleSource looks up news articles for a geographic code
// (typically a postal code). Failures wrap domain.ErrUpstream.
type ArticleSource interface {
	Lookup(ctx context.Context, geo string) ([]domain.Article, error)
}
