package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// Valuator prices grouped balances and computes portfolio totals.
type Valuator struct {
	prices           port.PriceCacheService
	logger           port.Logger
	benchmarkAssetID string
	concurrency      int
}

// NewValuator creates a Valuator. benchmarkAssetID is the asset used for the
// secondary total (BTC); concurrency bounds parallel network fallbacks.
func NewValuator(prices port.PriceCacheService, benchmarkAssetID string, concurrency int, l port.Logger) *Valuator {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Valuator{
		prices:           prices,
		logger:           l,
		benchmarkAssetID: benchmarkAssetID,
		concurrency:      concurrency,
	}
}

// Valuate resolves details for every asset in balances, sets USDBalance and Details
// and returns the balances sorted by USD value, highest first. Equal values keep
// first-seen order. Any failed lookup fails the whole valuation.
func (v *Valuator) Valuate(ctx context.Context, balances *entity.BalanceSet, priceCache entity.PriceCache) ([]entity.AssetBalance, error) {
	entries := balances.Balances()
	details := make([]*entity.AssetDetails, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			d, err := v.prices.Lookup(gctx, entry.AssetID, priceCache)
			if err != nil {
				return fmt.Errorf("valuate %s: %w", entry.AssetID, err)
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	valued := make([]entity.AssetBalance, len(entries))
	for i, entry := range entries {
		entry.USDBalance = entry.Balance * utils.ParseFloatOrNaN(details[i].PriceUSD)
		entry.Details = details[i]
		valued[i] = *entry
	}

	sort.SliceStable(valued, func(a, b int) bool {
		return valued[a].USDBalance > valued[b].USDBalance
	})
	return valued, nil
}

// TotalUSD sums USDBalance over balances. Zero balances count; NaN propagates.
func TotalUSD(balances []entity.AssetBalance) float64 {
	var total float64
	for _, b := range balances {
		total += b.USDBalance
	}
	return total
}

// TotalBTC converts totalUSD into the benchmark asset using its USD price. An unusable
// price is logged and left to produce Inf or NaN.
func (v *Valuator) TotalBTC(ctx context.Context, totalUSD float64, priceCache entity.PriceCache) (float64, error) {
	benchmark, err := v.prices.Lookup(ctx, v.benchmarkAssetID, priceCache)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve benchmark asset: %w", err)
	}
	price := utils.ParseFloatOrNaN(benchmark.PriceUSD)
	if price == 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		v.logger.Warn("Benchmark asset price is unusable, total will not be finite",
			"asset_id", v.benchmarkAssetID, "price_usd", benchmark.PriceUSD)
	}
	return totalUSD / price, nil
}
