package models

import "fmt"

// AddressRecord is a single row of the input table. Records are
// immutable once loaded.
type AddressRecord struct {
	Street      string `csv:"address"`    // Street is the street part of the mailing address.
	City        string `csv:"city"`       // City is the municipality name.
	State       string `csv:"state_abbr"` // State is the two-letter state abbreviation.
	Zip         string `csv:"zip"`        // Zip is the postal code.
	Institution string `csv:"inst_name"`  // Institution is the display name used for the map legend.
}

// FullAddress builds the single-line mailing address used for geocoding
// lookups: "street, city, state zip". It performs no validation; empty
// fields simply produce a shorter (possibly malformed) string.
func (a AddressRecord) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Zip)
}

// GeocodedRecord pairs an AddressRecord with its resolution outcome.
// Nil latitude/longitude mean the address could not be resolved.
type GeocodedRecord struct {
	AddressRecord
	FullAddress string   `csv:"full_address"`
	Latitude    *float64 `csv:"latitude"`
	Longitude   *float64 `csv:"longitude"`
}

// Resolved reports whether both coordinates are present.
func (g GeocodedRecord) Resolved() bool {
	return g.Latitude != nil && g.Longitude != nil
}
