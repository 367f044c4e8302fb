// Package metrics holds the process's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "minisocial"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Posts created.",
	})

	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Comments created.",
	})

	// Likes counts toggles; action is "like" or "unlike", changed is whether a row moved.
	Likes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Like and unlike actions.",
	}, []string{"action", "changed"})

	Follows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "follows_total",
		Help:      "Follow and unfollow actions.",
	}, []string{"action", "changed"})

	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Accounts registered.",
	})
)

// Changed renders a bool label value.
func Changed(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
