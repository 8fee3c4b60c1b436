package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "coastal_hazard"

// Metrics - счетчики и гистограммы приема, обновления и агрегации
type Metrics struct {
	PostsIngested   *prometheus.CounterVec // labels: source, outcome={inserted,duplicate,invalid}
	PostsFetched    *prometheus.CounterVec // labels: platform
	FetchErrors     *prometheus.CounterVec // labels: platform
	RefreshJobs     *prometheus.CounterVec // labels: status={completed,failed}
	GeocodeRequests *prometheus.CounterVec // labels: outcome={found,not_found,error,cache_hit}
	HotspotDuration prometheus.Histogram
	UrgencyUpdates  prometheus.Counter
}

// NewMetrics создает метрики и регистрирует их в реестре по умолчанию
func NewMetrics() *Metrics {
	m := build()
	prometheus.MustRegister(
		m.PostsIngested,
		m.PostsFetched,
		m.FetchErrors,
		m.RefreshJobs,
		m.GeocodeRequests,
		m.HotspotDuration,
		m.UrgencyUpdates,
	)
	return m
}

// NewMetricsForTesting создает метрики без регистрации, чтобы тесты
// не падали с "duplicate metrics collector registration".
func NewMetricsForTesting() *Metrics {
	return build()
}

func build() *Metrics {
	return &Metrics{
		PostsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_ingested_total",
			Help:      "Posts passed through ingestion by source and outcome.",
		}, []string{"source", "outcome"}),
		PostsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_fetched_total",
			Help:      "Posts returned by upstream social platforms.",
		}, []string{"platform"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed upstream fetches by platform.",
		}, []string{"platform"}),
		RefreshJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_jobs_total",
			Help:      "Finished refresh jobs by final status.",
		}, []string{"status"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		HotspotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hotspot_compute_duration_seconds",
			Help:      "Time spent reading records and computing hotspot cells.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		UrgencyUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "urgency_backfill_updates_total",
			Help:      "Records whose urgency changed during a backfill.",
		}),
	}
}
