package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route", "status"},
	)

	// Time spent waiting on the text-generation API.
	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_upstream_latency_seconds",
			Help:    "Text-generation upstream call latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"model", "outcome"},
	)

	StoryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_requests_total",
			Help: "Story generation requests by outcome",
		},
		[]string{"outcome", "fallback_prompt"},
	)

	ListingQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_queries_total",
			Help: "Project listing queries by filter and sort",
		},
		[]string{"filter", "sort"},
	)

	ProjectActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_actions_total",
			Help: "Project actions by kind and outcome",
		},
		[]string{"action", "outcome"},
	)
)

func RecordHTTPRequestDuration(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func RecordUpstreamLatency(model, outcome string, duration time.Duration) {
	UpstreamLatency.WithLabelValues(model, outcome).Observe(duration.Seconds())
}

func IncrementStoryRequest(outcome string, fallback bool) {
	label := "false"
	if fallback {
		label = "true"
	}
	StoryRequests.WithLabelValues(outcome, label).Inc()
}

func IncrementListingQuery(filter, sort string) {
	ListingQueries.WithLabelValues(filter, sort).Inc()
}

func IncrementProjectAction(action, outcome string) {
	ProjectActions.WithLabelValues(action, outcome).Inc()
}
