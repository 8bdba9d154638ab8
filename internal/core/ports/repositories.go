package ports

import (
	"context"

	"github.com/samirrijal/mashup/internal/core/domain"
)

// PlaceRepository reads the places table. Implementations never write.
type PlaceRepository interface {
	// Search returns places whose name or first-level admin name equals
	// query, or whose postal code starts with query. Order is store-defined.
	Search(ctx context.Context, query string) ([]domain.Place, error)

	// InBounds returns at most limit places inside b, one per
	// domain.DedupKey (smallest postal code wins), in random order.
	InBounds(ctx context.Context, b domain.Bounds, limit int) ([]domain.Place, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}
