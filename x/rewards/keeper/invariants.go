package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/x/rewards/types"
)

// RegisterInvariants registers all rewards module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-supply", TotalSupplyInvariant(k))
}

// TotalSupplyInvariant checks that the balances of every denom add up to its supply
func TotalSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sums := make(map[string]math.Int)
		for _, balance := range k.GetAllBalances(ctx) {
			if !balance.Amount.IsPositive() {
				return sdk.FormatInvariant(types.ModuleName, "total-supply",
					fmt.Sprintf("non-positive balance %s%s for %s", balance.Amount, balance.Denom, balance.Holder)), true
			}
			sum, ok := sums[balance.Denom]
			if !ok {
				sum = math.ZeroInt()
			}
			sums[balance.Denom] = sum.Add(balance.Amount)
		}

		supply := k.GetAllSupply(ctx)
		if len(supply) != len(sums) {
			return sdk.FormatInvariant(types.ModuleName, "total-supply",
				fmt.Sprintf("%d denoms in supply, %d in balances", len(supply), len(sums))), true
		}
		for denom, total := range supply {
			sum, ok := sums[denom]
			if !ok {
				sum = math.ZeroInt()
			}
			if !sum.Equal(total) {
				return sdk.FormatInvariant(types.ModuleName, "total-supply",
					fmt.Sprintf("supply of %s is %s, balances sum to %s", denom, total, sum)), true
			}
		}

		return sdk.FormatInvariant(types.ModuleName, "total-supply", "balances match supply"), false
	}
}
