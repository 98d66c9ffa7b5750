package websearch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrod",
			Subsystem: "websearch",
			Name:      "searches_total",
			Help:      "Total number of web search calls by result",
		},
		[]string{"result"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agrod",
			Subsystem: "websearch",
			Name:      "search_duration_seconds",
			Help:      "Duration of web search provider calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
