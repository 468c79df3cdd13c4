package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total quantity of items added to carts",
	})

	CartItemsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_removed_total",
		Help: "Total number of cart lines removed",
	})

	CartsClearedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carts_cleared_total",
		Help: "Total number of carts cleared",
	})

	CartSnapshotFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_snapshot_failures_total",
		Help: "Total number of failed cart snapshot operations",
	}, []string{"op"})

	CartRehydrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_rehydrations_total",
		Help: "Total number of cart loads from the snapshot store",
	}, []string{"outcome"})

	CheckoutsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_started_total",
		Help: "Total number of checkout sessions started",
	})

	CheckoutStepFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_step_failures_total",
		Help: "Total number of rejected checkout step transitions",
	}, []string{"step", "reason"})

	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Total number of orders handed off to the messaging channel",
	})

	HandoffRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "handoff_retries_total",
		Help: "Total number of handoff link re-fetches",
	})

	CatalogFilterLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_filter_latency_seconds",
		Help:    "Latency of catalog filter/sort evaluation",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
