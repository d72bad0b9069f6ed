package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// solveDuration measures the end-to-end time of a solve request.
	// Labels: status (solved, unsolvable, error, timeout)
	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stripsolve",
		Subsystem: "solver",
		Name:      "duration_seconds",
		Help:      "Solve request duration in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	}, []string{"status"})

	// solveRequests counts solve requests by outcome.
	// Labels: status (solved, unsolvable, error, timeout)
	solveRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stripsolve",
		Subsystem: "solver",
		Name:      "requests_total",
		Help:      "Total solve requests by outcome",
	}, []string{"status"})

	// statesExpanded tracks the distribution of search effort.
	statesExpanded = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stripsolve",
		Subsystem: "solver",
		Name:      "states_expanded",
		Help:      "Distribution of states expanded per solve",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	})

	// planLength tracks the distribution of plan lengths for solved requests.
	planLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stripsolve",
		Subsystem: "solver",
		Name:      "plan_length",
		Help:      "Distribution of plan lengths",
		Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
	})
)
