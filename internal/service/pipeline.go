package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quadrantgeo/pinmap/internal/geocoding"
	"github.com/quadrantgeo/pinmap/internal/metrics"
	"github.com/quadrantgeo/pinmap/internal/models"
	"github.com/quadrantgeo/pinmap/internal/repository"
)

// ErrIncompleteDataset is returned after a geocoding pass in which at
// least one address stayed unresolved. The persisted dataset is NOT
// rolled back; it keeps the unresolved rows with empty coordinates so
// the failures are inspectable.
var ErrIncompleteDataset = errors.New("geocoded dataset is incomplete")

// Resolver resolves a single address into coordinates. Implemented by
// geocoding.Resolver; declared here so the pipeline can be tested with
// a mock.
type Resolver interface {
	Resolve(ctx context.Context, address string) geocoding.Result
}

// PipelineService runs the geocoding pass for a whole input table and
// owns its persistence: it gates on an existing dataset artifact,
// resolves every row otherwise, persists the outcome unconditionally,
// and then enforces completeness.
type PipelineService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	resolver     Resolver             // Per-address geocode resolution with retry policy
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
}

// NewPipelineService creates a new instance of PipelineService.
// It takes a logger, a repository interface, an address resolver,
// the provider name for metrics labeling, and the metrics collector.
func NewPipelineService(
	log *slog.Logger,
	repo repository.Interface,
	resolver Resolver,
	providerName string,
	metrics *metrics.Metrics,
) *PipelineService {
	return &PipelineService{
		log:          log,
		repo:         repo,
		resolver:     resolver,
		providerName: providerName,
		metrics:      metrics,
	}
}

// EnsureGeocoded returns the geocoded dataset for the configured input
// table. If a dataset artifact already exists on disk it is reused as-is
// with zero provider calls (an incomplete artifact is reused too, with a
// warning). Otherwise every input row is resolved sequentially, the full
// dataset is persisted, and ErrIncompleteDataset is returned when any
// row stayed unresolved. A canceled context aborts the pass without
// persisting anything, so an interrupted run never masquerades as a
// finished one.
func (ps *PipelineService) EnsureGeocoded(ctx context.Context) ([]models.GeocodedRecord, error) {
	if ps.repo.HasDataset() {
		ps.metrics.CacheHits.Inc()
		ps.log.InfoContext(ctx, "Found existing geocoded dataset, skipping geocoding pass")

		records, err := ps.repo.LoadDataset()
		if err != nil {
			return nil, fmt.Errorf("failed to load existing dataset: %w", err)
		}

		if unresolved := countUnresolved(records); unresolved > 0 {
			ps.log.WarnContext(ctx, "Reusing dataset with unresolved rows; delete the artifact to re-geocode",
				"unresolved", unresolved, "rows", len(records))
		}

		return records, nil
	}

	addresses, err := ps.repo.LoadAddresses()
	if err != nil {
		return nil, fmt.Errorf("failed to load input addresses: %w", err)
	}

	ps.log.InfoContext(ctx, "Geocoding addresses...", "rows", len(addresses), "provider", ps.providerName)

	records := make([]models.GeocodedRecord, 0, len(addresses))
	for _, addr := range addresses {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("geocoding pass interrupted, dataset not persisted: %w", err)
		}
		records = append(records, ps.geocodeOne(ctx, addr))
	}

	// An interrupt mid-pass turns every remaining lookup into an absent
	// row; persisting that would gate all future runs on a poisoned
	// artifact. Abort without writing instead.
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("geocoding pass interrupted, dataset not persisted: %w", err)
	}

	// Persist even when some rows failed to resolve, so the failures are
	// visible in the artifact.
	if err = ps.repo.SaveDataset(records); err != nil {
		return nil, fmt.Errorf("failed to persist geocoded dataset: %w", err)
	}

	if unresolved := countUnresolved(records); unresolved > 0 {
		return records, fmt.Errorf("%w: %d of %d addresses unresolved",
			ErrIncompleteDataset, unresolved, len(records))
	}

	ps.log.InfoContext(ctx, "Geocoding pass finished", "rows", len(records))

	return records, nil
}

// geocodeOne resolves a single input row and records metrics for the
// attempt. Resolution failures are encoded as absent coordinates, never
// returned as errors.
func (ps *PipelineService) geocodeOne(ctx context.Context, addr models.AddressRecord) models.GeocodedRecord {
	fullAddress := addr.FullAddress()

	startTime := time.Now()
	result := ps.resolver.Resolve(ctx, fullAddress)
	duration := time.Since(startTime).Seconds()
	ps.metrics.ResolveSeconds.WithLabelValues(ps.providerName).Observe(duration)

	if result.Attempts > 1 {
		ps.metrics.RetryAttempts.Inc()
	}

	if result.Resolved() {
		ps.metrics.AddressesProcessed.WithLabelValues("success").Inc()
		ps.log.DebugContext(ctx, "Resolved address", "address", fullAddress,
			"lat", *result.Latitude, "lon", *result.Longitude)
	} else {
		ps.metrics.AddressesProcessed.WithLabelValues("failure").Inc()
		if result.Err != nil && !errors.Is(result.Err, geocoding.ErrNoMatch) {
			ps.metrics.APIErrors.Inc()
		}
	}

	return models.GeocodedRecord{
		AddressRecord: addr,
		FullAddress:   fullAddress,
		Latitude:      result.Latitude,
		Longitude:     result.Longitude,
	}
}

func countUnresolved(records []models.GeocodedRecord) int {
	var unresolved int
	for _, rec := range records {
		if !rec.Resolved() {
			unresolved++
		}
	}
	return unresolved
}
