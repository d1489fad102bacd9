package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the catalog/cart/order core.
type BusinessMetrics struct {
	// Catalog
	ProductsCreated prometheus.Counter

	// Carts
	CartsCreated prometheus.Counter
	CartsCleared prometheus.Counter
	CartValue    prometheus.Histogram

	// Orders
	OrdersCreated   *prometheus.CounterVec
	OrdersRejected  *prometheus.CounterVec
	OrderValue      prometheus.Histogram
	OrderItemCount  prometheus.Histogram
	CartResetMissed prometheus.Counter
}

// NewBusinessMetrics creates and registers the business metric collectors.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "shopcore"
	}
	factory := promauto.With(reg)

	return &BusinessMetrics{
		ProductsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_created_total",
			Help:      "Total number of products created",
		}),
		CartsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carts_created_total",
			Help:      "Total number of carts created",
		}),
		CartsCleared: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carts_cleared_total",
			Help:      "Total number of carts cleared",
		}),
		CartValue: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_value",
			Help:      "Cart totals at creation time, in currency units",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		OrdersCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Total number of orders created",
		}, []string{"payment_method"}),
		OrdersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Total number of rejected order submissions",
		}, []string{"reason"}),
		OrderValue: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_value",
			Help:      "Order totals at creation time, in currency units",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		OrderItemCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_item_count",
			Help:      "Number of line items per created order",
			Buckets:   []float64{1, 2, 3, 5, 10, 20},
		}),
		CartResetMissed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_cart_reset_missed_total",
			Help:      "Orders persisted whose cart reset step failed and was not retried",
		}),
	}
}

// RecordProductCreated increments the product creation counter.
func (m *BusinessMetrics) RecordProductCreated() {
	if m == nil {
		return
	}
	m.ProductsCreated.Inc()
}

// RecordCartCreated observes a created cart.
func (m *BusinessMetrics) RecordCartCreated(total float64) {
	if m == nil {
		return
	}
	m.CartsCreated.Inc()
	m.CartValue.Observe(total)
}

// RecordCartCleared increments the cart clear counter.
func (m *BusinessMetrics) RecordCartCleared() {
	if m == nil {
		return
	}
	m.CartsCleared.Inc()
}

// RecordOrderCreated observes a created order.
func (m *BusinessMetrics) RecordOrderCreated(paymentMethod string, total float64, itemCount int) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(paymentMethod).Inc()
	m.OrderValue.Observe(total)
	m.OrderItemCount.Observe(float64(itemCount))
}

// RecordOrderRejected increments the rejection counter for the given reason.
func (m *BusinessMetrics) RecordOrderRejected(reason string) {
	if m == nil {
		return
	}
	m.OrdersRejected.WithLabelValues(reason).Inc()
}

// RecordCartResetMissed increments the missed-cart-reset counter.
func (m *BusinessMetrics) RecordCartResetMissed() {
	if m == nil {
		return
	}
	m.CartResetMissed.Inc()
}
