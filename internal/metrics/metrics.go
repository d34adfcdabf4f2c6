package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AddressesProcessed *prometheus.CounterVec
	APIErrors          prometheus.Counter
	RetryAttempts      prometheus.Counter
	ResolveSeconds     *prometheus.HistogramVec
	CacheHits          prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		AddressesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pinmap_addresses_processed_total",
			Help: "Total number of addresses processed by the geocoding pass.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pinmap_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RetryAttempts: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pinmap_geocode_retry_attempts_total",
			Help: "Total number of retried geocoding lookups.",
		}),
		ResolveSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pinmap_address_resolve_duration_seconds",
			Help:    "Duration of resolving one address, including any retry and its backoff.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		CacheHits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pinmap_dataset_cache_hits_total",
			Help: "Total number of runs that reused an existing geocoded dataset.",
		}),
	}
}
