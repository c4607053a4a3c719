// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus collectors for the API server.
//
// # Registry
//
// Collectors are registered on a private [prometheus.Registry] instead of the
// global default so that tests can build independent instances.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "taskly"

// Metrics holds every collector exported by the server.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authentication gate outcomes
	GateDecisionsTotal *prometheus.CounterVec

	// Audit log entries by status and recorder
	AuditEntriesTotal *prometheus.CounterVec
}

// New creates a registry with Go runtime, process, and application collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		GateDecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "auth_gate_decisions_total",
				Help:      "Authentication gate outcomes",
			},
			[]string{"outcome"},
		),
		AuditEntriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "audit_entries_total",
				Help:      "Audit log entries written, by status and sink result",
			},
			[]string{"status", "result"},
		),
	}
}

// ObserveRequest records one finished HTTP request.
func (metrics *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordGateDecision counts one authentication gate outcome.
func (metrics *Metrics) RecordGateDecision(outcome string) {
	metrics.GateDecisionsTotal.WithLabelValues(outcome).Inc()
}

// RecordAuditEntry counts one audit entry. result is "ok" or "error".
func (metrics *Metrics) RecordAuditEntry(status, result string) {
	metrics.AuditEntriesTotal.WithLabelValues(status, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{Registry: metrics.registry})
}
