package service

import (
	"math"
	"testing"

	"mixin_wallet/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func balancesByID(set *entity.BalanceSet) map[string]float64 {
	out := make(map[string]float64, set.Len())
	for _, b := range set.Balances() {
		out[b.AssetID] = b.Balance
	}
	return out
}

func TestGroupAndSumOutputs(t *testing.T) {
	outputs := []entity.Output{
		{AssetID: "a", Amount: "1.5"},
		{AssetID: "b", Amount: "2"},
		{AssetID: "a", Amount: "0.25"},
	}

	set := GroupAndSumOutputs(outputs)

	require.Equal(t, []string{"a", "b"}, set.AssetIDs())
	require.Equal(t, map[string]float64{"a": 1.75, "b": 2}, balancesByID(set))
}

func TestGroupAndSumOutputs_PermutationInvariant(t *testing.T) {
	outputs := []entity.Output{
		{AssetID: "a", Amount: "1"},
		{AssetID: "b", Amount: "0.5"},
		{AssetID: "a", Amount: "3"},
		{AssetID: "c", Amount: "7.25"},
		{AssetID: "b", Amount: "0.5"},
	}
	permuted := []entity.Output{outputs[4], outputs[2], outputs[0], outputs[3], outputs[1]}

	require.Equal(t, balancesByID(GroupAndSumOutputs(outputs)), balancesByID(GroupAndSumOutputs(permuted)))
}

func TestGroupAndSumOutputs_Empty(t *testing.T) {
	set := GroupAndSumOutputs(nil)
	require.Zero(t, set.Len())
	require.Empty(t, set.Balances())
}

func TestGroupAndSumOutputs_MalformedAmountIsNaN(t *testing.T) {
	set := GroupAndSumOutputs([]entity.Output{
		{AssetID: "a", Amount: "1"},
		{AssetID: "a", Amount: "not-a-number"},
		{AssetID: "b", Amount: "2"},
	})

	a, ok := set.Get("a")
	require.True(t, ok)
	require.True(t, math.IsNaN(a.Balance))
	b, ok := set.Get("b")
	require.True(t, ok)
	require.Equal(t, 2.0, b.Balance)
}
