package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/pkg/logger"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const btcAssetID = "c6d0c728-2624-429b-8e0d-d9d19b6592fa"

func TestValuate_SortsByUSDBalance(t *testing.T) {
	priceCache := entity.PriceCache{
		"A": {AssetID: "A", PriceUSD: "2"},
		"B": {AssetID: "B", PriceUSD: "0.5"},
	}
	set := entity.NewBalanceSet()
	set.Entry("A").Balance = 10
	set.Entry("B").Balance = 100

	v := NewValuator(staticPrices{cache: priceCache}, btcAssetID, 2, logger.NewNop())
	valued, err := v.Valuate(context.Background(), set, priceCache)
	require.NoError(t, err)

	got := make([][2]any, 0, len(valued))
	for _, b := range valued {
		got = append(got, [2]any{b.AssetID, b.USDBalance})
	}
	want := [][2]any{{"B", 50.0}, {"A", 20.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("valuation mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 70.0, TotalUSD(valued))
	require.Equal(t, "2", valued[1].Details.PriceUSD)
}

func TestValuate_TiesKeepFirstSeenOrder(t *testing.T) {
	priceCache := entity.PriceCache{
		"x": {PriceUSD: "1"},
		"y": {PriceUSD: "1"},
		"z": {PriceUSD: "1"},
	}
	set := entity.NewBalanceSet()
	set.Entry("z").Balance = 5
	set.Entry("x").Balance = 5
	set.Entry("y").Balance = 5

	v := NewValuator(staticPrices{cache: priceCache}, btcAssetID, 3, logger.NewNop())
	valued, err := v.Valuate(context.Background(), set, priceCache)
	require.NoError(t, err)

	ids := []string{valued[0].AssetID, valued[1].AssetID, valued[2].AssetID}
	require.Equal(t, []string{"z", "x", "y"}, ids)
}

func TestValuate_MissingAssetFallsBackToNetwork(t *testing.T) {
	client := &fakeMixinClient{network: map[string]entity.AssetDetails{
		"remote": {AssetID: "remote", PriceUSD: "3"},
	}}
	prices := NewPriceCacheService(client, nil, logger.NewNop())
	set := entity.NewBalanceSet()
	set.Entry("remote").Balance = 2

	v := NewValuator(prices, btcAssetID, 1, logger.NewNop())
	valued, err := v.Valuate(context.Background(), set, entity.PriceCache{})
	require.NoError(t, err)
	require.Equal(t, 6.0, valued[0].USDBalance)
	require.Equal(t, []string{"remote"}, client.networkCalls)
}

func TestValuate_LookupFailureFailsAll(t *testing.T) {
	client := &fakeMixinClient{networkErr: errors.New("boom")}
	prices := NewPriceCacheService(client, nil, logger.NewNop())
	set := entity.NewBalanceSet()
	set.Entry("a").Balance = 1

	v := NewValuator(prices, btcAssetID, 1, logger.NewNop())
	_, err := v.Valuate(context.Background(), set, entity.PriceCache{})
	require.Error(t, err)
}

func TestTotalUSD_Empty(t *testing.T) {
	require.Equal(t, 0.0, TotalUSD(nil))
}

func TestTotalBTC(t *testing.T) {
	priceCache := entity.PriceCache{btcAssetID: {AssetID: btcAssetID, PriceUSD: "35000"}}
	v := NewValuator(staticPrices{cache: priceCache}, btcAssetID, 1, logger.NewNop())

	total, err := v.TotalBTC(context.Background(), 70, priceCache)
	require.NoError(t, err)
	require.InDelta(t, 0.002, total, 1e-12)
}

func TestTotalBTC_ZeroPriceIsNotFinite(t *testing.T) {
	priceCache := entity.PriceCache{btcAssetID: {AssetID: btcAssetID, PriceUSD: "0"}}
	v := NewValuator(staticPrices{cache: priceCache}, btcAssetID, 1, logger.NewNop())

	total, err := v.TotalBTC(context.Background(), 70, priceCache)
	require.NoError(t, err)
	require.True(t, math.IsInf(total, 1))

	total, err = v.TotalBTC(context.Background(), 0, priceCache)
	require.NoError(t, err)
	require.True(t, math.IsNaN(total))
}
