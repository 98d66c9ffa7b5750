package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agrod",
			Subsystem: "orchestrator",
			Name:      "query_duration_seconds",
			Help:      "Duration of comprehensive queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	webEscalations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agrod",
			Subsystem: "orchestrator",
			Name:      "web_escalations_total",
			Help:      "Queries escalated to web search due to weak local retrieval",
		},
	)
)
