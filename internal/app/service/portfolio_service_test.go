package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/infrastructure/state"
	"mixin_wallet/internal/pkg/logger"
	"mixin_wallet/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestPortfolio(client *fakeMixinClient, published *state.Value[*entity.PortfolioSnapshot], opts ...PortfolioOption) *PortfolioServiceImpl {
	prices := NewPriceCacheService(client, nil, logger.NewNop())
	valuator := NewValuator(prices, btcAssetID, 2, logger.NewNop())
	return NewPortfolioService(client, prices, valuator, published, logger.NewNop(), opts...)
}

func TestRefreshBalances_PublishesSnapshot(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	client := &fakeMixinClient{
		topAssets: []entity.AssetDetails{
			{AssetID: "A", PriceUSD: "2"},
			{AssetID: "B", PriceUSD: "0.5"},
			{AssetID: btcAssetID, PriceUSD: "35000"},
		},
		outputs: []entity.Output{
			{AssetID: "A", Amount: "4"},
			{AssetID: "B", Amount: "100"},
			{AssetID: "A", Amount: "6"},
		},
	}
	published := state.NewValue[*entity.PortfolioSnapshot](nil)
	svc := newTestPortfolio(client, published, WithClock(func() time.Time { return now }))

	snapshot, err := svc.RefreshBalances(context.Background(), "user-1", "token")
	require.NoError(t, err)

	require.Len(t, snapshot.Balances, 2)
	require.Equal(t, "B", snapshot.Balances[0].AssetID)
	require.Equal(t, "A", snapshot.Balances[1].AssetID)
	require.Equal(t, 70.0, snapshot.TotalUSDBalance)
	require.InDelta(t, 0.002, snapshot.TotalBTCBalance, 1e-12)
	require.Equal(t, now, snapshot.RefreshedAt)
	require.Same(t, snapshot, published.Get())
	require.Same(t, snapshot, svc.Snapshot())

	require.Equal(t, [][]string{{"user-1"}}, client.outputCalls)
	require.Equal(t, []entity.OutputState{entity.OutputStateUnspent}, client.outputStates)
}

func TestRefreshBalances_FailureKeepsPreviousSnapshot(t *testing.T) {
	client := &fakeMixinClient{
		topAssets: []entity.AssetDetails{{AssetID: btcAssetID, PriceUSD: "35000"}},
	}
	previous := &entity.PortfolioSnapshot{TotalUSDBalance: 1}
	published := state.NewValue(previous)
	svc := newTestPortfolio(client, published)

	client.outputsErr = errors.New("outputs unavailable")
	_, err := svc.RefreshBalances(context.Background(), "user-1", "token")
	require.Error(t, err)
	require.Same(t, previous, published.Get())

	client.outputsErr = nil
	client.topErr = errors.New("assets unavailable")
	_, err = svc.RefreshBalances(context.Background(), "user-1", "token")
	require.Error(t, err)
	require.Same(t, previous, published.Get())
}

func TestRefreshBalances_NoOutputs(t *testing.T) {
	client := &fakeMixinClient{
		topAssets: []entity.AssetDetails{{AssetID: btcAssetID, PriceUSD: "35000"}},
	}
	svc := newTestPortfolio(client, nil)

	snapshot, err := svc.RefreshBalances(context.Background(), "user-1", "token")
	require.NoError(t, err)
	require.Empty(t, snapshot.Balances)
	require.Equal(t, 0.0, snapshot.TotalUSDBalance)
	require.Equal(t, 0.0, snapshot.TotalBTCBalance)
}

func TestRefreshBalances_HostBridgeFallsBackToProvider(t *testing.T) {
	client := &fakeMixinClient{
		topAssets: []entity.AssetDetails{
			{AssetID: "A", PriceUSD: "1"},
			{AssetID: btcAssetID, PriceUSD: "10"},
		},
		outputs: []entity.Output{{AssetID: "A", Amount: "5"}},
	}
	svc := newTestPortfolio(client, nil, WithHostBridge(entity.HostBridgeIOS))

	snapshot, err := svc.RefreshBalances(context.Background(), "user-1", "token")
	require.NoError(t, err)
	require.Equal(t, 5.0, snapshot.TotalUSDBalance)
	require.Len(t, client.outputCalls, 1)
}

func TestRefreshBalances_UnknownAssetAbortsRefresh(t *testing.T) {
	client := &fakeMixinClient{
		topAssets: []entity.AssetDetails{{AssetID: btcAssetID, PriceUSD: "35000"}},
		outputs:   []entity.Output{{AssetID: "unlisted", Amount: "1"}},
	}
	previous := &entity.PortfolioSnapshot{TotalUSDBalance: 1}
	published := state.NewValue(previous)
	svc := newTestPortfolio(client, published)

	_, err := svc.RefreshBalances(context.Background(), "user-1", "token")
	require.ErrorIs(t, err, entity.ErrAssetNotFound)
	require.Same(t, previous, published.Get())
	require.Equal(t, []string{"unlisted"}, client.networkCalls)
}

func TestExportSnapshots(t *testing.T) {
	published := state.NewValue[*entity.PortfolioSnapshot](nil)
	svc := newTestPortfolio(&fakeMixinClient{}, published)
	stop := svc.ExportSnapshots()

	published.Set(&entity.PortfolioSnapshot{
		Balances:        []entity.AssetBalance{{AssetID: "a"}, {AssetID: "b"}},
		TotalUSDBalance: 42,
	})
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.PortfolioTotalUSD) == 42 &&
			testutil.ToFloat64(metrics.PortfolioAssets) == 2
	}, time.Second, 5*time.Millisecond)

	stop()
	published.Set(&entity.PortfolioSnapshot{TotalUSDBalance: 7})
	require.Equal(t, 42.0, testutil.ToFloat64(metrics.PortfolioTotalUSD))
}
