// Package telemetry provides business-level Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Cart activity
	CartsCreated   *prometheus.CounterVec
	CartItemsAdded prometheus.Counter
	CartsMerged    prometheus.Counter
	CartsExpired   prometheus.Counter

	// Checkout and orders
	OrdersCreated   *prometheus.CounterVec
	OrderValue      *prometheus.HistogramVec
	OrderItemCount  prometheus.Histogram
	OrdersCancelled prometheus.Counter

	// Point of sale
	SalesRecorded prometheus.Counter
	SaleValue     prometheus.Histogram
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "bodega"
	}
	subsystem := "business"

	return &BusinessMetrics{
		CartsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_created_total",
				Help:      "Total carts created",
			},
			[]string{"kind"}, // kind: customer, anonymous
		),
		CartItemsAdded: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total units added to carts",
			},
		),
		CartsMerged: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_merged_total",
				Help:      "Total anonymous carts folded into customer carts on login",
			},
		),
		CartsExpired: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_expired_total",
				Help:      "Total expired anonymous carts removed by the cleanup worker",
			},
		),
		OrdersCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created",
			},
			[]string{"delivery_type"},
		),
		OrderValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_cents",
				Help:      "Order value distribution in cents",
				Buckets:   []float64{500, 1000, 2500, 5000, 7500, 10000, 15000, 25000, 50000},
			},
			[]string{"delivery_type"},
		),
		OrderItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of lines per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
			},
		),
		OrdersCancelled: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_cancelled_total",
				Help:      "Total orders cancelled",
			},
		),
		SalesRecorded: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pos_sales_total",
				Help:      "Total point-of-sale sales recorded",
			},
		),
		SaleValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pos_sale_value_cents",
				Help:      "Point-of-sale sale value distribution in cents",
				Buckets:   []float64{500, 1000, 2500, 5000, 7500, 10000, 25000},
			},
		),
	}
}

// Business is the global instance for easy access from handlers.
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance.
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
