// Package metrics declares the Prometheus collectors exported by the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RefreshTotal counts balance refreshes by result ("ok" or "error").
	RefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mixin_wallet",
		Name:      "balance_refresh_total",
		Help:      "Balance refreshes by result.",
	}, []string{"result"})

	// RefreshDuration observes the wall time of balance refreshes.
	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mixin_wallet",
		Name:      "balance_refresh_duration_seconds",
		Help:      "Duration of balance refreshes.",
		Buckets:   prometheus.DefBuckets,
	})

	// ProviderRequests counts provider API calls by endpoint and HTTP status.
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mixin_wallet",
		Name:      "provider_requests_total",
		Help:      "Provider API requests by endpoint and status code.",
	}, []string{"endpoint", "status"})

	// PriceCacheSize reports the number of assets in the price cache.
	PriceCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mixin_wallet",
		Name:      "price_cache_assets",
		Help:      "Assets currently held in the price cache.",
	})

	// LookupFallbacks counts asset lookups that missed the cache.
	LookupFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixin_wallet",
		Name:      "asset_lookup_fallback_total",
		Help:      "Asset lookups served by a network fetch instead of the cache.",
	})

	// PortfolioTotalUSD reports the USD total of the last published snapshot.
	PortfolioTotalUSD = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mixin_wallet",
		Name:      "portfolio_total_usd",
		Help:      "USD total of the last published portfolio snapshot.",
	})

	// PortfolioAssets reports the number of assets in the last published snapshot.
	PortfolioAssets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mixin_wallet",
		Name:      "portfolio_assets",
		Help:      "Assets held in the last published portfolio snapshot.",
	})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RefreshTotal, RefreshDuration, ProviderRequests, PriceCacheSize, LookupFallbacks,
			PortfolioTotalUSD, PortfolioAssets,
		)
	})
}
