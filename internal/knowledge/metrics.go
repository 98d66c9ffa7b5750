package knowledge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// documentsAdded counts add operations by result.
	documentsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrod",
			Subsystem: "knowledge",
			Name:      "documents_added_total",
			Help:      "Total number of document add operations",
		},
		[]string{"result"},
	)

	// documentsIndexed tracks the current size of the vector index.
	documentsIndexed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agrod",
			Subsystem: "knowledge",
			Name:      "documents_indexed",
			Help:      "Number of documents currently in the vector index",
		},
	)

	// searches counts similarity searches by result.
	searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrod",
			Subsystem: "knowledge",
			Name:      "searches_total",
			Help:      "Total number of similarity searches",
		},
		[]string{"result"},
	)
)
