package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full optimize call, cache lookup included
	OptimizeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "relic_optimize_latency_seconds",
		Help:    "Latency of relic optimization for a user",
		Buckets: prometheus.DefBuckets,
	})

	// Number of owned relics fed into the optimizer per call
	OptimizeCandidates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "relic_optimize_candidates",
		Help:    "Owned relics considered per optimization",
		Buckets: []float64{0, 10, 25, 50, 100, 200, 500, 1000},
	})

	OptimizeCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relic_optimize_cache_total",
		Help: "Optimization cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	// Slots left empty in a result, labelled by slot
	OptimizeEmptySlots = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relic_optimize_empty_slots_total",
		Help: "Slots with no eligible owned relic",
	}, []string{"slot"})
)

func Init() {
	prometheus.MustRegister(
		OptimizeLatency,
		OptimizeCandidates,
		OptimizeCache,
		OptimizeEmptySlots,
	)
}
