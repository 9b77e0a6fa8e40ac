// Package metrics exposes the app's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests by method and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ezpay_http_requests_total",
		Help: "HTTP requests handled, by method and status code.",
	}, []string{"method", "code"})

	// ChargesTotal counts charge attempts by outcome: accepted, fully_paid,
	// invalid_amount, exceeds_remaining, card_not_found, insufficient_funds,
	// error.
	ChargesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ezpay_charges_total",
		Help: "Charge attempts, by outcome.",
	}, []string{"outcome"})
)
