package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the storefront.
type BusinessMetrics struct {
	// Cart activity
	CartItemsAdded   *prometheus.CounterVec
	CartItemsRemoved prometheus.Counter
	CartUpdated      prometheus.Counter
	CartValue        prometheus.Histogram

	// Checkout funnel
	CheckoutStarted   prometheus.Counter
	CheckoutCompleted prometheus.Counter
	CheckoutRejected  *prometheus.CounterVec
	PurchaseValue     prometheus.Histogram
	PurchaseItemCount prometheus.Histogram

	// Auth
	SignIns      prometheus.Counter
	SignInFailed prometheus.Counter
	SignOuts     prometheus.Counter

	// Snapshot store health
	SnapshotWriteFailed prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "wardrobe"
	}

	subsystem := "business"

	return &BusinessMetrics{
		CartItemsAdded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total add to cart actions",
			},
			[]string{"category"},
		),
		CartItemsRemoved: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_removed_total",
				Help:      "Total remove from cart actions",
			},
		),
		CartUpdated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_updates_total",
				Help:      "Total cart quantity updates",
			},
		),
		CartValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_value_cents",
				Help:      "Cart value after each mutation, in cents",
				Buckets:   prometheus.ExponentialBuckets(500, 2.5, 10),
			},
		),
		CheckoutStarted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_started_total",
				Help:      "Total checkout attempts",
			},
		),
		CheckoutCompleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_completed_total",
				Help:      "Total successful checkouts",
			},
		),
		CheckoutRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_rejected_total",
				Help:      "Total rejected or failed checkouts by error code",
			},
			[]string{"code"},
		),
		PurchaseValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "purchase_value_cents",
				Help:      "Value of completed purchases, in cents",
				Buckets:   prometheus.ExponentialBuckets(500, 2.5, 10),
			},
		),
		PurchaseItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "purchase_item_count",
				Help:      "Number of line items in completed purchases",
				Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
			},
		),
		SignIns: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sign_ins_total",
				Help:      "Total successful sign-ins",
			},
		),
		SignInFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sign_in_failures_total",
				Help:      "Total failed sign-in attempts",
			},
		),
		SignOuts: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sign_outs_total",
				Help:      "Total sign-outs",
			},
		),
		SnapshotWriteFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "snapshot_write_failures_total",
				Help:      "Total snapshot store write failures",
			},
		),
	}
}
