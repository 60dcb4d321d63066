package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the process-wide Prometheus collectors. The registerer
// is explicit so tests can use a throwaway registry.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	CheckoutsTotal *prometheus.CounterVec
	OrderValue     prometheus.Histogram
	LowStockGauge  prometheus.Gauge
}

func New(prefix string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		CheckoutsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		OrderValue: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "order_value",
			Help:      "Committed order totals.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		LowStockGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: prefix,
			Name:      "low_stock_products",
			Help:      "Products at or below the low stock threshold, from the last sweep.",
		}),
	}
}
