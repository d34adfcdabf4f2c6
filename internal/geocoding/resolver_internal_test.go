package geocoding

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/quadrantgeo/pinmap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider counts calls and replays canned responses in order.
type stubProvider struct {
	calls     int
	responses []func() (*models.Coordinates, error)
}

func (s *stubProvider) Geocode(_ context.Context, _ string) (*models.Coordinates, error) {
	idx := s.calls
	s.calls++
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx]()
}

func newTestResolver(provider Provider) (*Resolver, *int) {
	resolver := NewResolver(provider, slog.Default(), time.Second, time.Second)
	slept := 0
	resolver.sleep = func(time.Duration) { slept++ }
	return resolver, &slept
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("success on first attempt", func(t *testing.T) {
		provider := &stubProvider{responses: []func() (*models.Coordinates, error){
			func() (*models.Coordinates, error) {
				return &models.Coordinates{Latitude: 42.36, Longitude: -71.06}, nil
			},
		}}
		resolver, slept := newTestResolver(provider)

		result := resolver.Resolve(ctx, "700 Boylston St, Boston, MA 02116")

		require.True(t, result.Resolved())
		assert.InEpsilon(t, 42.36, *result.Latitude, 0.0001)
		assert.InEpsilon(t, -71.06, *result.Longitude, 0.0001)
		assert.Equal(t, 1, provider.calls)
		assert.Equal(t, 0, *slept)
	})

	t.Run("transient error then success on retry", func(t *testing.T) {
		transient := errors.New("service unavailable")
		provider := &stubProvider{responses: []func() (*models.Coordinates, error){
			func() (*models.Coordinates, error) { return nil, transient },
			func() (*models.Coordinates, error) {
				return &models.Coordinates{Latitude: 42.36, Longitude: -71.06}, nil
			},
		}}
		resolver, slept := newTestResolver(provider)

		result := resolver.Resolve(ctx, "700 Boylston St, Boston, MA 02116")

		require.True(t, result.Resolved())
		assert.Equal(t, 2, result.Attempts)
		assert.Equal(t, 2, provider.calls)
		assert.Equal(t, 1, *slept)
	})

	t.Run("persistent transient error makes exactly two attempts", func(t *testing.T) {
		transient := errors.New("timeout")
		provider := &stubProvider{responses: []func() (*models.Coordinates, error){
			func() (*models.Coordinates, error) { return nil, transient },
		}}
		resolver, slept := newTestResolver(provider)

		result := resolver.Resolve(ctx, "somewhere")

		assert.False(t, result.Resolved())
		assert.Nil(t, result.Latitude)
		assert.Nil(t, result.Longitude)
		assert.Equal(t, 2, result.Attempts)
		require.ErrorIs(t, result.Err, transient)
		assert.Equal(t, 2, provider.calls)
		assert.Equal(t, 1, *slept)
	})

	t.Run("nil coordinates without error are treated as unresolved", func(t *testing.T) {
		provider := &stubProvider{responses: []func() (*models.Coordinates, error){
			func() (*models.Coordinates, error) { return nil, nil },
		}}
		resolver, slept := newTestResolver(provider)

		result := resolver.Resolve(ctx, "somewhere")

		assert.False(t, result.Resolved())
		assert.Nil(t, result.Latitude)
		assert.Nil(t, result.Longitude)
		assert.Equal(t, 1, result.Attempts)
		assert.NoError(t, result.Err)
		assert.Equal(t, 0, *slept)
	})

	t.Run("no match is not retried", func(t *testing.T) {
		provider := &stubProvider{responses: []func() (*models.Coordinates, error){
			func() (*models.Coordinates, error) { return nil, ErrNoMatch },
		}}
		resolver, slept := newTestResolver(provider)

		result := resolver.Resolve(ctx, "nowhere at all")

		assert.False(t, result.Resolved())
		assert.Equal(t, 1, result.Attempts)
		require.ErrorIs(t, result.Err, ErrNoMatch)
		assert.Equal(t, 1, provider.calls)
		assert.Equal(t, 0, *slept)
	})
}
