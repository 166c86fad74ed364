package service

import (
	"slices"

	"coordinate-converter/internal/models"
)

// ExtractAddress builds a partial StructuredAddress from the address
// components of a reverse geocoding candidate. Each recognized type tag
// fills exactly one target field; components with no recognized tag are
// ignored and a later component overwrites an earlier one for the same
// field. The result carries no coordinates, those are merged in by the
// caller from the input row.
func ExtractAddress(components []models.AddressComponent) models.StructuredAddress {
	var address models.StructuredAddress

	for _, component := range components {
		long := component.LongName
		short := component.ShortName

		if slices.Contains(component.Types, "country") {
			address.Country = &long
		}
		if slices.Contains(component.Types, "administrative_area_level_1") {
			address.State = &short
		}
		if slices.Contains(component.Types, "administrative_area_level_2") {
			address.City = &long
		}
		if slices.Contains(component.Types, "sublocality_level_1") {
			address.Neighborhood = &long
		}
		if slices.Contains(component.Types, "street_number") {
			address.StreetNumber = &long
		}
		if slices.Contains(component.Types, "route") {
			address.StreetName = &long
		}
		if slices.Contains(component.Types, "postal_code") {
			address.PostalCode = &long
		}
	}

	return address
}

// IsComplete reports whether an address has every one of its nine fields
// populated: the seven extracted components plus the merged-in latitude and
// longitude. Only complete addresses are persisted.
func IsComplete(address models.StructuredAddress) bool {
	return address.Country != nil &&
		address.State != nil &&
		address.City != nil &&
		address.Neighborhood != nil &&
		address.StreetNumber != nil &&
		address.StreetName != nil &&
		address.PostalCode != nil &&
		address.Latitude != nil &&
		address.Longitude != nil
}
