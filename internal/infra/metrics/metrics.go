package infra_metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend side

	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematch_tmdb_requests_total",
			Help: "Total number of TMDB API requests",
		},
		[]string{"endpoint", "result"}, // result: success, failure, rejected
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviematch_tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviematch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematch_cache_lookups_total",
			Help: "Total number of page cache lookups",
		},
		[]string{"kind", "result"}, // result: hit, miss, error
	)

	SwipesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematch_swipes_recorded_total",
			Help: "Total number of swipe decisions stored",
		},
		[]string{"content_type", "action"},
	)

	// Deck gateway side

	DeckSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviematch_deck_sessions_active",
			Help: "Number of open swipe sessions",
		},
	)

	PrefetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematch_prefetch_requests_total",
			Help: "Total number of page fetches issued by sessions",
		},
		[]string{"result"}, // result: applied, stale, failure
	)

	SwipeSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviematch_swipe_send_failures_total",
			Help: "Swipe decisions the backend never acknowledged",
		},
	)
)
