package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skindx_predictions_total",
		Help: "Image classification requests by outcome.",
	}, []string{"outcome"})

	AssistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skindx_assistant_requests_total",
		Help: "Assistant requests by provider and outcome.",
	}, []string{"provider", "outcome"})

	ListingFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skindx_listing_fetches_total",
		Help: "Clinic listing lookups by outcome.",
	}, []string{"outcome"})

	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skindx_inference_duration_seconds",
		Help:    "Time spent waiting for the classifier.",
		Buckets: prometheus.DefBuckets,
	})
)
