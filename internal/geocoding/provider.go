package geocoding

import (
	"context"
	"errors"

	"github.com/quadrantgeo/pinmap/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// ErrNoMatch is returned (wrapped) by providers when the geocoding
// service answered normally but found no location for the address.
// Callers use it to distinguish "unknown address" from transport and
// service failures, which are worth retrying.
var ErrNoMatch = errors.New("no match found for address")
