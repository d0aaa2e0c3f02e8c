package service

import (
	"context"
	"fmt"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/infrastructure/state"
	"mixin_wallet/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
)

// priceCacheServiceImpl implements port.PriceCacheService.
type priceCacheServiceImpl struct {
	client    port.MixinClient
	logger    port.Logger
	prices    *cache.Cache
	published *state.Value[entity.PriceCache]
}

// NewPriceCacheService creates the price cache. Entries never expire; they are only
// overwritten by a later top-assets fetch carrying the same asset id.
func NewPriceCacheService(client port.MixinClient, published *state.Value[entity.PriceCache], l port.Logger) port.PriceCacheService {
	if published == nil {
		published = state.NewValue(entity.PriceCache{})
	}
	return &priceCacheServiceImpl{
		client:    client,
		logger:    l,
		prices:    cache.New(cache.NoExpiration, 0),
		published: published,
	}
}

// RefreshTopAssets implements port.PriceCacheService.
func (s *priceCacheServiceImpl) RefreshTopAssets(ctx context.Context) (entity.PriceCache, error) {
	topAssets, err := s.client.TopAssets(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch top assets", "error", err)
		return nil, fmt.Errorf("failed to fetch top assets: %w", err)
	}

	merged := s.published.Update(func(entity.PriceCache) entity.PriceCache {
		for _, asset := range topAssets {
			s.prices.Set(asset.AssetID, asset, cache.NoExpiration)
		}
		return s.snapshot()
	})

	metrics.PriceCacheSize.Set(float64(len(merged)))
	s.logger.Debug("Top assets merged into price cache", "fetched", len(topAssets), "cached", len(merged))
	return merged.Clone(), nil
}

// Lookup implements port.PriceCacheService. A miss is served by a network fetch whose
// result is returned but not cached.
func (s *priceCacheServiceImpl) Lookup(ctx context.Context, assetID string, priceCache entity.PriceCache) (*entity.AssetDetails, error) {
	if details, ok := priceCache[assetID]; ok {
		return &details, nil
	}

	metrics.LookupFallbacks.Inc()
	s.logger.Debug("Asset not in price cache, fetching from network", "asset_id", assetID)
	details, err := s.client.NetworkAsset(ctx, assetID)
	if err != nil {
		s.logger.Error("Failed to fetch asset details", "asset_id", assetID, "error", err)
		return nil, fmt.Errorf("failed to fetch asset %s: %w", assetID, err)
	}
	return details, nil
}

// Cache implements port.PriceCacheService.
func (s *priceCacheServiceImpl) Cache() entity.PriceCache {
	return s.published.Get().Clone()
}

func (s *priceCacheServiceImpl) snapshot() entity.PriceCache {
	items := s.prices.Items()
	out := make(entity.PriceCache, len(items))
	for id, item := range items {
		if details, ok := item.Object.(entity.AssetDetails); ok {
			out[id] = details
		}
	}
	return out
}
