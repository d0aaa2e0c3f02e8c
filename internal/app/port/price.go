package port

import (
	"context"

	"mixin_wallet/internal/domain/entity"
)

// PriceCacheService maintains the process-wide asset price cache.
type PriceCacheService interface {
	// RefreshTopAssets merges the provider's top assets into the cache and returns the result.
	RefreshTopAssets(ctx context.Context) (entity.PriceCache, error)
	// Lookup resolves an asset from cache, falling back to a one-shot network fetch.
	Lookup(ctx context.Context, assetID string, cache entity.PriceCache) (*entity.AssetDetails, error)
	// Cache returns the currently published cache.
	Cache() entity.PriceCache
}
