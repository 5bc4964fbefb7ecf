package keeper

import (
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// RegisterInvariants registers all oracle module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "oracle-set", OracleSetInvariant(k))
	ir.RegisterRoute(types.ModuleName, "payment-count", PaymentCountInvariant(k))
	ir.RegisterRoute(types.ModuleName, "confirmed-dispatch", ConfirmedDispatchInvariant(k))
}

// AllInvariants runs all invariants of the oracle module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			OracleSetInvariant(k),
			PaymentCountInvariant(k),
			ConfirmedDispatchInvariant(k),
		} {
			if res, stop := inv(ctx); stop {
				return res, stop
			}
		}
		return "", false
	}
}

// OracleSetInvariant checks that the stored registry satisfies its own rules
func OracleSetInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		set := k.GetOracleSet(ctx)
		if set.Owner == "" {
			// nothing stored before genesis
			return sdk.FormatInvariant(types.ModuleName, "oracle-set", "registry not initialised"), false
		}

		err := set.Validate(k.GetParams(ctx).MaxOracles)
		broken := err != nil
		msg := "registry is consistent"
		if broken {
			msg = err.Error()
		}
		return sdk.FormatInvariant(types.ModuleName, "oracle-set", msg), broken
	}
}

// PaymentCountInvariant checks the stored counter against the records
func PaymentCountInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		store := ctx.KVStore(k.storeKey)
		iterator := storetypes.KVStorePrefixIterator(store, types.PaymentKeyPrefix)
		defer iterator.Close()

		var actual uint64
		for ; iterator.Valid(); iterator.Next() {
			actual++
		}

		stored := k.GetPaymentCount(ctx)
		broken := stored != actual
		return sdk.FormatInvariant(types.ModuleName, "payment-count",
			fmt.Sprintf("stored count %d, actual records %d", stored, actual)), broken
	}
}

// ConfirmedDispatchInvariant checks that every Confirmed record went through
// the dispatcher
func ConfirmedDispatchInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		for _, payment := range k.GetPaymentsByStatus(ctx, commontypes.PaymentStatusConfirmed) {
			if payment.DispatchStatus == commontypes.DispatchStatusNone {
				count++
				msg += fmt.Sprintf("\t%s confirmed without dispatch\n", payment.TxID)
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "confirmed-dispatch",
			fmt.Sprintf("%d confirmed payments without dispatch\n%s", count, msg)), count != 0
	}
}
