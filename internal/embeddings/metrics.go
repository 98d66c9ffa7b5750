package embeddings

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agrod",
			Subsystem: "embeddings",
			Name:      "generation_duration_seconds",
			Help:      "Duration of embedding generation calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model", "operation"},
	)

	generationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrod",
			Subsystem: "embeddings",
			Name:      "generations_total",
			Help:      "Total number of embedding generation calls",
		},
		[]string{"model", "operation", "result"},
	)

	generatedTexts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agrod",
			Subsystem: "embeddings",
			Name:      "texts_total",
			Help:      "Total number of texts embedded",
		},
		[]string{"model"},
	)
)

// Metrics records embedding generation metrics.
type Metrics struct{}

// NewMetrics creates a Metrics recorder.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordGeneration records one embedding call.
func (m *Metrics) RecordGeneration(model, operation string, duration time.Duration, textCount int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	generationTotal.WithLabelValues(model, operation, result).Inc()
	generationDuration.WithLabelValues(model, operation).Observe(duration.Seconds())
	if err == nil {
		generatedTexts.WithLabelValues(model).Add(float64(textCount))
	}
}
