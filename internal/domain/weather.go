package domain

import "context"

// Place is the best geocoding match for a free-text location query.
type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Found reports whether the lookup resolved to a real place. Providers
// return a zero Place with a nil error when a query matches nothing.
func (p Place) Found() bool {
	return p.Name != ""
}

// Conditions is a current-weather snapshot for a coordinate pair.
type Conditions struct {
	TemperatureC          float64 `json:"temperature_c"`
	Description           string  `json:"description"`
	Icon                  string  `json:"icon"`
	TimezoneOffsetSeconds int     `json:"timezone_offset_seconds"`
}

// Geocoder resolves free-text location queries to coordinates.
type Geocoder interface {
	// Geocode returns the single best match for the query, or a zero Place
	// with a nil error when nothing matches.
	Geocode(ctx context.Context, query string) (Place, error)
}

// WeatherProvider reports current conditions and UV intensity for a
// coordinate pair.
type WeatherProvider interface {
	// CurrentConditions returns the present weather at the coordinates.
	CurrentConditions(ctx context.Context, lat, lon float64) (Conditions, error)

	// UVIndex returns the present UV index reading at the coordinates.
	UVIndex(ctx context.Context, lat, lon float64) (float64, error)
}
