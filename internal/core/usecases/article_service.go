package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/core/ports"
)

// ArticleService passes article lookups through to the news source.
type ArticleService struct {
	source ports.ArticleSource
}

// NewArticleService creates a new ArticleService.
func NewArticleService(source ports.ArticleSource) *ArticleService {
	return &ArticleService{source: source}
}

// Lookup returns the articles for geo keyed by geo itself. The code is not
// validated beyond being non-empty; the source decides what a bad code means.
func (s *ArticleService) Lookup(ctx context.Context, geo string) (map[string][]domain.Article, error) {
	if geo == "" {
		return nil, fmt.Errorf("%w: geo must not be empty", domain.ErrInvalidArgument)
	}

	articles, err := s.source.Lookup(ctx, geo)
	if err != nil {
		return nil, fmt.Errorf("lookup articles for %q: %w", geo, err)
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return map[string][]domain.Article{geo: articles}, nil
}
