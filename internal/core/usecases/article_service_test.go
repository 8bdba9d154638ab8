package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/core/usecases"
)

// --- Mock ArticleSource ---

type mockArticleSource struct {
	lookupFn func(ctx context.Context, geo string) ([]domain.Article, error)
}

func (m *mockArticleSource) Lookup(ctx context.Context, geo string) ([]domain.Article, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, geo)
	}
	return nil, nil
}

func TestArticleService_Lookup(t *testing.T) {
	src := &mockArticleSource{
		lookupFn: func(ctx context.Context, geo string) ([]domain.Article, error) {
			return []domain.Article{
				{Title: "Harbor reopens", Link: "https://example.com/a"},
				{Title: "Snow expected", Link: "https://example.com/b"},
			}, nil
		},
	}

	svc := usecases.NewArticleService(src)
	result, err := svc.Lookup(context.Background(), "02138")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected one key, got %d", len(result))
	}
	if len(result["02138"]) != 2 {
		t.Errorf("expected 2 articles under 02138, got %d", len(result["02138"]))
	}
}

func TestArticleService_Lookup_EmptyGeo(t *testing.T) {
	svc := usecases.NewArticleService(&mockArticleSource{})
	_, err := svc.Lookup(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestArticleService_Lookup_UpstreamError(t *testing.T) {
	src := &mockArticleSource{
		lookupFn: func(ctx context.Context, geo string) ([]domain.Article, error) {
			return nil, fmt.Errorf("%w: status 503", domain.ErrUpstream)
		},
	}

	svc := usecases.NewArticleService(src)
	_, err := svc.Lookup(context.Background(), "02138")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestArticleService_Lookup_NoArticles(t *testing.T) {
	svc := usecases.NewArticleService(&mockArticleSource{})
	result, err := svc.Lookup(context.Background(), "99999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	articles, ok := result["99999"]
	if !ok || articles == nil {
		t.Errorf("expected empty non-nil list under 99999, got %v", result)
	}
}
