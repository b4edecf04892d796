package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"hestia/core/events"
)

// MarketplaceMetrics tracks chain activity across the native engines.
type MarketplaceMetrics struct {
	chainEvents      *prometheus.CounterVec
	ordersPlaced     prometheus.Counter
	ordersCancelled  prometheus.Counter
	rewardsPurchased prometheus.Counter
	rewardsRedeemed  prometheus.Counter
}

var (
	marketplaceOnce     sync.Once
	marketplaceRegistry *MarketplaceMetrics
)

// Marketplace returns the lazily-initialised marketplace metrics registry.
func Marketplace() *MarketplaceMetrics {
	marketplaceOnce.Do(func() {
		marketplaceRegistry = &MarketplaceMetrics{
			chainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "hestia",
				Subsystem: "events",
				Name:      "emitted_total",
				Help:      "Count of chain events segmented by event type.",
			}, []string{"type"}),
			ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hestia",
				Subsystem: "orders",
				Name:      "placed_total",
				Help:      "Count of orders placed across all restaurants.",
			}),
			ordersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hestia",
				Subsystem: "orders",
				Name:      "cancelled_total",
				Help:      "Count of orders cancelled across all restaurants.",
			}),
			rewardsPurchased: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hestia",
				Subsystem: "rewards",
				Name:      "purchased_total",
				Help:      "Count of voucher assets bought with reward points.",
			}),
			rewardsRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "hestia",
				Subsystem: "rewards",
				Name:      "redeemed_total",
				Help:      "Count of voucher assets burned against orders.",
			}),
		}
		prometheus.MustRegister(
			marketplaceRegistry.chainEvents,
			marketplaceRegistry.ordersPlaced,
			marketplaceRegistry.ordersCancelled,
			marketplaceRegistry.rewardsPurchased,
			marketplaceRegistry.rewardsRedeemed,
		)
	})
	return marketplaceRegistry
}

// ObserveEvent records a chain event by its type and bumps the matching
// activity counter.
func (m *MarketplaceMetrics) ObserveEvent(eventType string) {
	if m == nil {
		return
	}
	if eventType == "" {
		eventType = "unknown"
	}
	m.chainEvents.WithLabelValues(eventType).Inc()
	switch eventType {
	case events.TypeOrderCreated:
		m.ordersPlaced.Inc()
	case events.TypeOrderCancelled:
		m.ordersCancelled.Inc()
	case events.TypeRewardPurchased:
		m.rewardsPurchased.Inc()
	case events.TypeRewardRedeemed:
		m.rewardsRedeemed.Inc()
	}
}
