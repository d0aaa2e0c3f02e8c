package service

import (
	"context"
	"sync"

	"mixin_wallet/internal/domain/entity"
)

type fakeMixinClient struct {
	mu sync.Mutex

	profile    *entity.Profile
	profileErr error
	outputs    []entity.Output
	outputsErr error
	topAssets  []entity.AssetDetails
	topErr     error
	network    map[string]entity.AssetDetails
	networkErr error

	networkCalls []string
	outputCalls  [][]string
	outputStates []entity.OutputState
}

func (f *fakeMixinClient) UserMe(_ context.Context, _ string) (*entity.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeMixinClient) SafeOutputs(_ context.Context, members []string, _ string, state entity.OutputState) ([]entity.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputCalls = append(f.outputCalls, members)
	f.outputStates = append(f.outputStates, state)
	return f.outputs, f.outputsErr
}

func (f *fakeMixinClient) TopAssets(_ context.Context) ([]entity.AssetDetails, error) {
	return f.topAssets, f.topErr
}

func (f *fakeMixinClient) NetworkAsset(_ context.Context, assetID string) (*entity.AssetDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.networkCalls = append(f.networkCalls, assetID)
	if f.networkErr != nil {
		return nil, f.networkErr
	}
	d, ok := f.network[assetID]
	if !ok {
		return nil, entity.ErrAssetNotFound
	}
	return &d, nil
}

func (f *fakeMixinClient) SafeAsset(ctx context.Context, assetID string, _ string) (*entity.AssetDetails, error) {
	return f.NetworkAsset(ctx, assetID)
}

// staticPrices serves lookups from the given cache only.
type staticPrices struct {
	cache entity.PriceCache
}

func (p staticPrices) RefreshTopAssets(context.Context) (entity.PriceCache, error) {
	return p.cache.Clone(), nil
}

func (p staticPrices) Lookup(_ context.Context, assetID string, c entity.PriceCache) (*entity.AssetDetails, error) {
	d := c[assetID]
	return &d, nil
}

func (p staticPrices) Cache() entity.PriceCache {
	return p.cache.Clone()
}

type fakePortfolio struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakePortfolio) RefreshBalances(_ context.Context, userID string, _ string) (*entity.PortfolioSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userID)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.PortfolioSnapshot{}, nil
}

func (f *fakePortfolio) Snapshot() *entity.PortfolioSnapshot { return nil }

func (f *fakePortfolio) refreshCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type spyURIBuilder struct {
	payments []entity.PaymentRequest
	shares   []entity.ShareCard
	err      error
}

func (b *spyURIBuilder) PaymentURI(req entity.PaymentRequest) (string, error) {
	b.payments = append(b.payments, req)
	if b.err != nil {
		return "", b.err
	}
	return "pay://" + req.AssetID, nil
}

func (b *spyURIBuilder) ShareURI(card entity.ShareCard) (string, error) {
	b.shares = append(b.shares, card)
	return "share://" + card.Action, nil
}

type mapSymbols map[string][2]string

func (m mapSymbols) Decode(symbol string) (string, string) {
	ids := m[symbol]
	return ids[0], ids[1]
}
