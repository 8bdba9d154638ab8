package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/pkg/sqlutil"
)

const placeColumns = `
	country_code, postal_code, place_name,
	COALESCE(admin_name1, ''), COALESCE(admin_code1, ''),
	COALESCE(admin_name2, ''), COALESCE(admin_code2, ''),
	COALESCE(admin_name3, ''), COALESCE(admin_code3, ''),
	latitude, longitude, COALESCE(accuracy, 0)`

// PlaceRepo implements ports.PlaceRepository on SQLite.
type PlaceRepo struct {
	db *DB
}

// NewPlaceRepo creates a new PlaceRepo.
func NewPlaceRepo(db *DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

// Search matches city or state exactly, or postal code by prefix.
// SQLite's LIKE is case-insensitive for ASCII.
func (r *PlaceRepo) Search(ctx context.Context, query string) ([]domain.Place, error) {
	rows, err := r.db.SQL.QueryContext(ctx, `
		SELECT `+placeColumns+`
		FROM places
		WHERE place_name = ?1 OR admin_name1 = ?1 OR postal_code LIKE ?2 ESCAPE '\'
	`, query, sqlutil.PrefixPattern(query))
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	return scanPlaces(rows)
}

// InBounds returns one random sample of distinct places inside b.
// ROW_NUMBER keeps the smallest postal code of each town.
func (r *PlaceRepo) InBounds(ctx context.Context, b domain.Bounds, limit int) ([]domain.Place, error) {
	lngFilter := "?3 <= longitude AND longitude <= ?4"
	if b.CrossesAntimeridian() {
		lngFilter = "?3 <= longitude OR longitude <= ?4"
	}

	rows, err := r.db.SQL.QueryContext(ctx, `
		SELECT `+placeColumns+`
		FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY country_code, place_name, admin_code1
				ORDER BY postal_code
			) AS rank_in_town
			FROM places
			WHERE ?1 <= latitude AND latitude <= ?2 AND (`+lngFilter+`)
		)
		WHERE rank_in_town = 1
		ORDER BY RANDOM()
		LIMIT ?5
	`, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon, limit)
	if err != nil {
		return nil, fmt.Errorf("query places in bounds: %w", err)
	}
	return scanPlaces(rows)
}

// Ping checks the handle.
func (r *PlaceRepo) Ping(ctx context.Context) error {
	return r.db.SQL.PingContext(ctx)
}

func scanPlaces(rows *sql.Rows) ([]domain.Place, error) {
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
