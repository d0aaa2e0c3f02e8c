package port

import (
	"context"

	"mixin_wallet/internal/domain/entity"
)

// MixinClient defines the provider API calls the application depends on.
type MixinClient interface {
	// UserMe fetches the profile bound to token. A nil profile with a nil error means
	// the provider answered without data.
	UserMe(ctx context.Context, token string) (*entity.Profile, error)

	// SafeOutputs lists outputs owned by members with threshold 1.
	SafeOutputs(ctx context.Context, members []string, token string, state entity.OutputState) ([]entity.Output, error)

	// TopAssets fetches the provider's top assets list.
	TopAssets(ctx context.Context) ([]entity.AssetDetails, error)

	// NetworkAsset fetches a single asset without authentication.
	NetworkAsset(ctx context.Context, assetID string) (*entity.AssetDetails, error)

	// SafeAsset fetches a single asset with the user's token.
	SafeAsset(ctx context.Context, assetID string, token string) (*entity.AssetDetails, error)
}
