package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/pkg/sqlutil"
)

const placeColumns = `
	country_code, postal_code, place_name,
	COALESCE(admin_name1, ''), COALESCE(admin_code1, ''),
	COALESCE(admin_name2, ''), COALESCE(admin_code2, ''),
	COALESCE(admin_name3, ''), COALESCE(admin_code3, ''),
	latitude, longitude, COALESCE(accuracy, 0)`

// PlaceRepo implements ports.PlaceRepository with pgx.
type PlaceRepo struct {
	db     *DB
	tracer trace.Tracer
}

// NewPlaceRepo creates a new PlaceRepo.
func NewPlaceRepo(db *DB) *PlaceRepo {
	return &PlaceRepo{db: db, tracer: otel.Tracer("mashup/postgres")}
}

// Search matches city or state exactly, or postal code by prefix.
func (r *PlaceRepo) Search(ctx context.Context, query string) ([]domain.Place, error) {
	ctx, span := r.tracer.Start(ctx, "places.search")
	defer span.End()

	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+placeColumns+`
		FROM places
		WHERE place_name = $1 OR admin_name1 = $1 OR postal_code LIKE $2 ESCAPE '\'
	`, query, sqlutil.PrefixPattern(query))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query places: %w", err)
	}
	places, err := scanPlaces(rows)
	span.SetAttributes(attribute.Int("places.count", len(places)))
	return places, err
}

// InBounds returns one random sample of distinct places inside b.
// DISTINCT ON keeps the smallest postal code of each town.
func (r *PlaceRepo) InBounds(ctx context.Context, b domain.Bounds, limit int) ([]domain.Place, error) {
	ctx, span := r.tracer.Start(ctx, "places.in_bounds",
		trace.WithAttributes(attribute.Bool("bounds.crosses_antimeridian", b.CrossesAntimeridian())))
	defer span.End()

	lngFilter := "$3 <= longitude AND longitude <= $4"
	if b.CrossesAntimeridian() {
		lngFilter = "$3 <= longitude OR longitude <= $4"
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+placeColumns+`
		FROM (
			SELECT DISTINCT ON (country_code, place_name, admin_code1) *
			FROM places
			WHERE $1 <= latitude AND latitude <= $2 AND (`+lngFilter+`)
			ORDER BY country_code, place_name, admin_code1, postal_code
		) AS visible
		ORDER BY random()
		LIMIT $5
	`, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon, limit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query places in bounds: %w", err)
	}
	places, err := scanPlaces(rows)
	span.SetAttributes(attribute.Int("places.count", len(places)))
	return places, err
}

// Ping checks pool connectivity.
func (r *PlaceRepo) Ping(ctx context.Context) error {
	return r.db.Pool.Ping(ctx)
}

func scanPlaces(rows pgx.Rows) ([]domain.Place, error) {
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(
			&p.CountryCode, &p.PostalCode, &p.PlaceName,
			&p.AdminName1, &p.AdminCode1,
			&p.AdminName2, &p.AdminCode2,
			&p.AdminName3, &p.AdminCode3,
			&p.Latitude, &p.Longitude, &p.Accuracy,
		); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}
