package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/pkg/logging"
	"github.com/samirrijal/mashup/internal/pkg/metrics"
)

// Client implements ports.ArticleSource over RSS/Atom feeds.
type Client struct {
	feedURL     string // contains one %s for the escaped geo code
	fallbackURL string // used when the geo feed has no items; empty disables
	parser      *gofeed.Parser
	tracer      trace.Tracer
}

// Config configures a Client.
type Config struct {
	FeedURL     string
	FallbackURL string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// NewClient creates a new feed client.
func NewClient(cfg Config) (*Client, error) {
	if strings.Count(cfg.FeedURL, "%s") != 1 {
		return nil, fmt.Errorf("feed url %q must contain exactly one %%s", cfg.FeedURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	parser := gofeed.NewParser()
	parser.Client = hc
	parser.UserAgent = "mashup/1.0"

	return &Client{
		feedURL:     cfg.FeedURL,
		fallbackURL: cfg.FallbackURL,
		parser:      parser,
		tracer:      otel.Tracer("mashup/news"),
	}, nil
}

// Lookup fetches the articles for geo. An empty geo feed falls back to the
// fallback feed. Every failure wraps domain.ErrUpstream.
func (c *Client) Lookup(ctx context.Context, geo string) ([]domain.Article, error) {
	ctx, span := c.tracer.Start(ctx, "news.lookup", trace.WithAttributes(attribute.String("geo", geo)))
	defer span.End()

	start := time.Now()
	articles, source, err := c.lookup(ctx, geo)
	metrics.ArticleLookupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ArticleLookupsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.FromContext(ctx).ErrorContext(ctx, "article lookup failed", "geo", geo, "error", err)
		return nil, err
	}

	metrics.ArticleLookupsTotal.WithLabelValues(source).Inc()
	span.SetAttributes(attribute.Int("articles.count", len(articles)), attribute.String("articles.source", source))
	logging.FromContext(ctx).DebugContext(ctx, "article lookup", "geo", geo, "source", source, "count", len(articles))
	return articles, nil
}

func (c *Client) lookup(ctx context.Context, geo string) ([]domain.Article, string, error) {
	feed, err := c.fetch(ctx, fmt.Sprintf(c.feedURL, url.PathEscape(geo)))
	if err != nil {
		return nil, "", err
	}
	if len(feed.Items) > 0 || c.fallbackURL == "" {
		return toArticles(feed), "geo", nil
	}

	feed, err = c.fetch(ctx, c.fallbackURL)
	if err != nil {
		return nil, "", fmt.Errorf("fallback: %w", err)
	}
	return toArticles(feed), "fallback", nil
}

func (c *Client) fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("%w: %s returned %d", domain.ErrUpstream, feedURL, httpErr.StatusCode)
		}
		return nil, fmt.Errorf("%w: fetch %s: %v", domain.ErrUpstream, feedURL, err)
	}
	return feed, nil
}

func toArticles(feed *gofeed.Feed) []domain.Article {
	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		articles = append(articles, domain.Article{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
		})
	}
	return articles
}
