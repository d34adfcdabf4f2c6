package geocoding

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quadrantgeo/pinmap/internal/models"
)

// Default resolver timings. The request timeout bounds a single provider
// call; the backoff is the fixed pause before the one retry.
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultRetryBackoff   = 2 * time.Second
)

// Result is the outcome of resolving one address. Nil coordinates mean
// the address stays unresolved; Resolve never fails harder than that.
// Attempts and Err carry diagnostics for callers that track metrics.
type Result struct {
	Latitude  *float64
	Longitude *float64
	Attempts  int   // number of provider calls made (1 or 2)
	Err       error // last provider error, nil on success
}

// Resolved reports whether both coordinates are present.
func (r Result) Resolved() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Resolver wraps a Provider with the lookup policy for a pipeline pass:
// a fixed per-attempt timeout, and exactly one retry after a fixed
// backoff when the provider fails with anything other than ErrNoMatch.
// A "no match" answer is a definitive reply from the service and is not
// retried. Every failure path resolves to an absent Result plus a log
// line; Resolve never returns an error.
type Resolver struct {
	provider Provider
	log      *slog.Logger
	timeout  time.Duration
	backoff  time.Duration
	sleep    func(time.Duration) // injectable for tests
}

// NewResolver creates a Resolver around the given provider. Non-positive
// timeout or backoff values fall back to the defaults.
func NewResolver(provider Provider, log *slog.Logger, timeout, backoff time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	return &Resolver{
		provider: provider,
		log:      log,
		timeout:  timeout,
		backoff:  backoff,
		sleep:    time.Sleep,
	}
}

// Resolve geocodes a single address. At most two provider calls are made.
func (r *Resolver) Resolve(ctx context.Context, address string) Result {
	coords, err := r.attempt(ctx, address)
	if err == nil {
		return resultFrom(coords, 1)
	}

	if errors.Is(err, ErrNoMatch) {
		r.log.WarnContext(ctx, "Could not find coordinates for address", "address", address)
		return Result{Attempts: 1, Err: err}
	}

	r.log.WarnContext(ctx, "Geocoding service error, retrying once", "address", address, "error", err)
	r.sleep(r.backoff)

	coords, err = r.attempt(ctx, address)
	if err != nil {
		r.log.WarnContext(ctx, "Geocoding failed again, giving up on address", "address", address, "error", err)
		return Result{Attempts: 2, Err: err}
	}

	return resultFrom(coords, 2)
}

// attempt performs one provider call bounded by the request timeout.
func (r *Resolver) attempt(ctx context.Context, address string) (*models.Coordinates, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.provider.Geocode(attemptCtx, address)
}

func resultFrom(coords *models.Coordinates, attempts int) Result {
	// A provider answering (nil, nil) is off-contract; treat it as
	// unresolved rather than panicking.
	if coords == nil {
		return Result{Attempts: attempts}
	}
	lat, lon := coords.Latitude, coords.Longitude
	return Result{Latitude: &lat, Longitude: &lon, Attempts: attempts}
}
