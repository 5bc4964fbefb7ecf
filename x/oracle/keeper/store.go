package keeper

import (
	"fmt"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// GetPendingPayment retrieves the record for an external tx id
func (k Keeper) GetPendingPayment(ctx sdk.Context, txID string) (commontypes.PendingPayment, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetPaymentKey(txID))
	if bz == nil {
		return commontypes.PendingPayment{}, false
	}

	return mustUnmarshalPayment(bz), true
}

// GetAllPendingPayments returns every stored record in creation order
func (k Keeper) GetAllPendingPayments(ctx sdk.Context) []commontypes.PendingPayment {
	return k.collectPayments(ctx, func(commontypes.PendingPayment) bool { return true })
}

// GetPaymentsByStatus returns the records with the given status in creation order
func (k Keeper) GetPaymentsByStatus(ctx sdk.Context, status commontypes.PaymentStatus) []commontypes.PendingPayment {
	return k.collectPayments(ctx, func(p commontypes.PendingPayment) bool { return p.Status == status })
}

// GetPaymentCount returns the number of stored records
func (k Keeper) GetPaymentCount(ctx sdk.Context) uint64 {
	return k.getCounter(ctx, types.PaymentCountKey)
}

// ImportPayment stores a record exported by genesis, keeping its sequence
func (k Keeper) ImportPayment(ctx sdk.Context, payment commontypes.PendingPayment) error {
	if payment.TxID == "" {
		return errorsmod.Wrap(types.ErrInvalidPaymentData, "tx id cannot be empty")
	}
	if ctx.KVStore(k.storeKey).Has(types.GetPaymentKey(payment.TxID)) {
		return errorsmod.Wrapf(types.ErrInvalidPaymentData, "duplicate payment %s", payment.TxID)
	}

	k.setPendingPayment(ctx, payment)
	if payment.Sequence >= k.getCounter(ctx, types.NextSequenceKey) {
		k.setCounter(ctx, types.NextSequenceKey, payment.Sequence+1)
	}
	return nil
}

// Private helper methods

// setPendingPayment writes the record and maintains the count and the
// creation-order index for records seen for the first time.
func (k Keeper) setPendingPayment(ctx sdk.Context, payment commontypes.PendingPayment) {
	store := ctx.KVStore(k.storeKey)
	key := types.GetPaymentKey(payment.TxID)

	if !store.Has(key) {
		store.Set(types.GetPaymentSequenceKey(payment.Sequence), []byte(payment.TxID))
		k.setCounter(ctx, types.PaymentCountKey, k.GetPaymentCount(ctx)+1)
	}

	bz, err := payment.Marshal()
	if err != nil {
		panic(fmt.Errorf("failed to encode payment %s: %w", payment.TxID, err))
	}
	store.Set(key, bz)
}

func (k Keeper) deletePayment(ctx sdk.Context, payment commontypes.PendingPayment) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(types.GetPaymentKey(payment.TxID))
	store.Delete(types.GetPaymentSequenceKey(payment.Sequence))
	k.setCounter(ctx, types.PaymentCountKey, k.GetPaymentCount(ctx)-1)
}

// nextSequence returns the sequence for a new record and advances the counter
func (k Keeper) nextSequence(ctx sdk.Context) uint64 {
	seq := k.getCounter(ctx, types.NextSequenceKey)
	k.setCounter(ctx, types.NextSequenceKey, seq+1)
	return seq
}

// ensureCapacity makes room for one more record by pruning terminal records
// oldest-first. Pending records are never evicted.
func (k Keeper) ensureCapacity(ctx sdk.Context, params types.Params) error {
	if params.MaxStoredPayments == 0 {
		return nil
	}

	for k.GetPaymentCount(ctx) >= params.MaxStoredPayments {
		victim, found := k.oldestTerminalPayment(ctx)
		if !found {
			return errorsmod.Wrapf(types.ErrStoreCapacityReached,
				"%d records stored, all pending", k.GetPaymentCount(ctx))
		}

		k.deletePayment(ctx, victim)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePaymentPruned,
				sdk.NewAttribute(types.AttributeKeyTxID, victim.TxID),
				sdk.NewAttribute(types.AttributeKeyStatus, victim.Status.String()),
				sdk.NewAttribute(types.AttributeKeySequence, strconv.FormatUint(victim.Sequence, 10)),
			),
		)
		telemetry.IncrCounter(1, types.ModuleName, "payment", "pruned")
		k.Logger(ctx).Debug("pruned payment", "tx_id", victim.TxID, "status", victim.Status.String())
	}

	return nil
}

func (k Keeper) oldestTerminalPayment(ctx sdk.Context) (commontypes.PendingPayment, bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, types.PaymentSequenceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		bz := store.Get(types.GetPaymentKey(string(iterator.Value())))
		if bz == nil {
			continue
		}
		payment := mustUnmarshalPayment(bz)
		if payment.Status.IsTerminal() {
			return payment, true
		}
	}

	return commontypes.PendingPayment{}, false
}

func (k Keeper) collectPayments(ctx sdk.Context, keep func(commontypes.PendingPayment) bool) []commontypes.PendingPayment {
	store := ctx.KVStore(k.storeKey)
	payments := make([]commontypes.PendingPayment, 0)

	iterator := storetypes.KVStorePrefixIterator(store, types.PaymentSequenceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		bz := store.Get(types.GetPaymentKey(string(iterator.Value())))
		if bz == nil {
			continue
		}
		payment := mustUnmarshalPayment(bz)
		if keep(payment) {
			payments = append(payments, payment)
		}
	}

	return payments
}

func mustUnmarshalPayment(bz []byte) commontypes.PendingPayment {
	var payment commontypes.PendingPayment
	if err := payment.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode payment: %w", err))
	}
	return payment
}
