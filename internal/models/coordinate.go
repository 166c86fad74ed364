package models

// CoordinateRecord is one row of the input coordinate set. DistanceKM and
// BearingDegrees are optional columns and stay nil when the CSV does not
// carry them.
type CoordinateRecord struct {
	Latitude       float64
	Longitude      float64
	DistanceKM     *float64
	BearingDegrees *float64
}

// AddressComponent is one fragment of a reverse geocoding candidate: a
// display name in long and short form plus the semantic type tags the
// geocoding service attached to it (e.g. "route", "postal_code").
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}
