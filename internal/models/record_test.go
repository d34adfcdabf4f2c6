package models_test

import (
	"testing"

	"github.com/quadrantgeo/pinmap/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFullAddress(t *testing.T) {
	t.Run("formats street, city, state and zip", func(t *testing.T) {
		record := models.AddressRecord{
			Street:      "1 Ferncroft Rd",
			City:        "Danvers",
			State:       "MA",
			Zip:         "01923",
			Institution: "North Shore Community College",
		}

		assert.Equal(t, "1 Ferncroft Rd, Danvers, MA 01923", record.FullAddress())
	})

	t.Run("is pure and idempotent", func(t *testing.T) {
		record := models.AddressRecord{Street: "50 Oakland St", City: "Wellesley Hills", State: "MA", Zip: "02481"}

		first := record.FullAddress()
		second := record.FullAddress()

		assert.Equal(t, first, second)
	})

	t.Run("missing fields propagate into the output", func(t *testing.T) {
		record := models.AddressRecord{City: "Boston", State: "MA"}

		assert.Equal(t, ", Boston, MA ", record.FullAddress())
	})
}

func TestGeocodedRecord_Resolved(t *testing.T) {
	lat, lon := 42.36, -71.06

	assert.True(t, models.GeocodedRecord{Latitude: &lat, Longitude: &lon}.Resolved())
	assert.False(t, models.GeocodedRecord{Latitude: &lat}.Resolved())
	assert.False(t, models.GeocodedRecord{Longitude: &lon}.Resolved())
	assert.False(t, models.GeocodedRecord{}.Resolved())
}
