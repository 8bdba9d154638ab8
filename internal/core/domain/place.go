package domain

// Place is a row of the places table (a GeoNames postal code record).
// The table is populated out-of-band; this service never writes to it.
type Place struct {
	CountryCode string  `json:"country_code"`
	PostalCode  string  `json:"postal_code"`
	PlaceName   string  `json:"place_name"`
	AdminName1  string  `json:"admin_name1"`
	AdminCode1  string  `json:"admin_code1"`
	AdminName2  string  `json:"admin_name2"`
	AdminCode2  string  `json:"admin_code2"`
	AdminName3  string  `json:"admin_name3"`
	AdminCode3  string  `json:"admin_code3"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Accuracy    int     `json:"accuracy"`
}

// DedupKey identifies places that render as the same marker on the map.
// Several postal codes of one town collapse into a single key.
type DedupKey struct {
	CountryCode string
	PlaceName   string
	AdminCode1  string
}

// Key returns the deduplication key of p.
func (p Place) Key() DedupKey {
	return DedupKey{CountryCode: p.CountryCode, PlaceName: p.PlaceName, AdminCode1: p.AdminCode1}
}

// Article is a news item returned by the article lookup.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}
