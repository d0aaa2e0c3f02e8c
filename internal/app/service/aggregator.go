package service

import (
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/pkg/utils"
)

// GroupAndSumOutputs groups outputs by asset id and sums their amounts as float64.
// Assets keep the order in which they were first seen. A malformed amount turns the
// asset's balance into NaN.
func GroupAndSumOutputs(outputs []entity.Output) *entity.BalanceSet {
	balances := entity.NewBalanceSet()
	for _, output := range outputs {
		entry := balances.Entry(output.AssetID)
		entry.Balance += utils.ParseFloatOrNaN(output.Amount)
	}
	return balances
}
