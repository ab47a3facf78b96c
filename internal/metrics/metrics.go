// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package metrics exposes Prometheus instrumentation for Cinemood:
// API throughput and latency, catalog upstream health, circuit breaker
// state, recommendation pipeline outcomes, and preference persistence.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// Catalog upstream metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of catalog API requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	// Recommendation pipeline metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation passes by outcome",
		},
		[]string{"outcome"},
	)

	PlanFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_plan_failures_total",
			Help: "Total number of individual plan requests that failed",
		},
	)

	PolicyFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_policy_filtered_total",
			Help: "Total number of movies discarded by the content policy filter",
		},
	)

	// Preference persistence metrics
	LedgerGenres = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "preference_ledger_genres",
			Help: "Number of distinct genres tracked in the preference ledger",
		},
	)

	SnapshotWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_write_failures_total",
			Help: "Total number of failed snapshot writes by key",
		},
		[]string{"key"},
	)

	InteractionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_events_total",
			Help: "Total number of interaction events processed by type",
		},
		[]string{"type"},
	)
)

// ObserveCatalogRequest records one catalog request's duration and outcome.
func ObserveCatalogRequest(operation string, start time.Time, err error) {
	CatalogRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	CatalogRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
