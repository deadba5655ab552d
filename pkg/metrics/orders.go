package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the order placement service call
	OrderPlacementLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_placement_latency_seconds",
		Help:    "Latency of order placement",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of orders placed successfully
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	// Placements rejected because a line exceeded the available stock
	OrdersRejectedStock = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_rejected_insufficient_stock_total",
		Help: "Order placements rejected for insufficient stock",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderPlacementLatency,
		OrdersPlaced,
		OrdersRejectedStock,
	)
}
