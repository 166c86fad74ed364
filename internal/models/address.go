package models

// StructuredAddress is an address assembled from reverse geocoding
// components. Every field is optional until the address has been validated;
// a nil field means the geocoder returned no component for it.
type StructuredAddress struct {
	Country      *string
	State        *string
	City         *string
	Neighborhood *string
	StreetNumber *string
	StreetName   *string
	PostalCode   *string
	Latitude     *float64
	Longitude    *float64
}

// Empty reports whether no address component was extracted at all. The
// coordinate fields are ignored since they are merged in from the input row,
// not extracted.
func (a StructuredAddress) Empty() bool {
	return a.Country == nil &&
		a.State == nil &&
		a.City == nil &&
		a.Neighborhood == nil &&
		a.StreetNumber == nil &&
		a.StreetName == nil &&
		a.PostalCode == nil
}

// Address represents a single persisted address row, containing its
// decomposed postal components and the coordinates it was resolved from.
type Address struct {
	ID           int     `json:"id"`
	StreetNumber string  `json:"street_number"`
	StreetName   string  `json:"street_name"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	PostalCode   string  `json:"postal_code"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}
