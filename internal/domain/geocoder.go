package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // provider importance/relevance score
}

// Found reports whether the provider matched the query.
func (r GeocodingResult) Found() bool {
	return r.FormattedAddress != "" || r.Lat != 0 || r.Lon != 0
}

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	// ForwardGeocode converts a place name to coordinates. No match is a
	// zero GeocodingResult with a nil error.
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)
}
