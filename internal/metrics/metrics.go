package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WalletsProcessed tracks processed wallets by outcome.
	WalletsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zscore_wallets_processed_total",
			Help: "Total number of wallet messages processed",
		},
		[]string{"outcome", "error_class"},
	)

	// ProcessingDuration tracks per-message processing latency.
	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zscore_processing_duration_seconds",
			Help:    "Wall-clock time spent processing one wallet message",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PublishErrors tracks records that could not be confirmed by the broker.
	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zscore_publish_errors_total",
			Help: "Total number of failed record publications",
		},
		[]string{"stream"},
	)

	// ConsumerErrors tracks errors surfaced by the consumer group session.
	ConsumerErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zscore_consumer_errors_total",
			Help: "Total number of consumer group errors",
		},
	)
)

// ObserveWalletProcessed records one processed message.
func ObserveWalletProcessed(success bool, errorClass string, processingTimeMs int64) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	WalletsProcessed.WithLabelValues(outcome, errorClass).Inc()
	ProcessingDuration.Observe(float64(processingTimeMs) / 1000)
}

// IncPublishError records a publish that the broker did not confirm.
func IncPublishError(successStream bool) {
	stream := "failure"
	if successStream {
		stream = "success"
	}
	PublishErrors.WithLabelValues(stream).Inc()
}
