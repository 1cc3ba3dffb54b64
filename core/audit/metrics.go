// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes recorded by RecordLogin.
const (
	LoginSucceeded = "success"
	LoginRejected  = "rejected"
	LoginMissing   = "missing"
	LoginLimited   = "limited"
)

// Registry holds every collector exported on /metrics.
var Registry = prometheus.NewRegistry()

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vabber",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route, method and status code.",
		},
		[]string{"route", "method", "code"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vabber",
			Name:      "http_request_duration_seconds",
			Help:      "Time spent serving HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vabber",
			Name:      "login_attempts_total",
			Help:      "Login form submissions, by outcome.",
		},
		[]string{"outcome"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vabber",
			Name:      "sessions_logged_in",
			Help:      "Sessions logged in since start minus explicit logouts.",
		},
	)
)

//nolint:gochecknoinits // collectors must be registered exactly once
func init() {
	Registry.MustRegister(
		requestsTotal,
		requestDuration,
		loginAttempts,
		activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveRequest records one served request.
func ObserveRequest(route, method string, statusCode int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}

	requestsTotal.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RecordLogin counts a login attempt with the given outcome.
func RecordLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()

	if outcome == LoginSucceeded {
		activeSessions.Inc()
	}
}

// RecordLogout counts an explicit logout.
func RecordLogout() {
	activeSessions.Dec()
}

// MetricsHandler exposes Registry in the prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
