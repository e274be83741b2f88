package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "package_health"

var (
	// AnalysesTotal counts completed batch analyses, labeled by ecosystem.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Completed dependency batch analyses.",
	}, []string{"ecosystem"})

	// PackagesScanned counts individual packages run through the evaluator.
	PackagesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "packages_scanned_total",
		Help:      "Packages evaluated across all analyses.",
	})

	// LookupFailures counts degraded external lookups by source
	// ("pypi", "npm", "osv"). Failures never abort an analysis; this counter
	// is the only aggregate visibility into them besides the logs.
	LookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_failures_total",
		Help:      "External lookups that degraded to an empty result.",
	}, []string{"source"})

	// AnalysisDuration observes wall-clock time per batch analysis.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of one batch analysis, external lookups included.",
		Buckets:   prometheus.DefBuckets,
	})

	// AlertsFired counts alert rule activations by severity.
	AlertsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_fired_total",
		Help:      "Alert rules that transitioned to firing.",
	}, []string{"severity"})
)
