package keeper

import (
	"bytes"
	"errors"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// SubmitConfirmation records one oracle attestation and reports whether this
// call reached consensus.
//
// The whole submission runs in a cached context. Its writes are kept on
// success and on failures that carry a terminal transition (expiry, rejection,
// best-effort dispatch failure). Every other failure leaves the store untouched.
func (k Keeper) SubmitConfirmation(ctx sdk.Context, confirmation commontypes.Confirmation) (bool, error) {
	cacheCtx, write := ctx.CacheContext()

	consensus, err := k.submitConfirmation(cacheCtx, confirmation)
	if err == nil || k.commitsOnError(ctx, err) {
		write()
	}

	return consensus, err
}

func (k Keeper) submitConfirmation(ctx sdk.Context, c commontypes.Confirmation) (bool, error) {
	set := k.GetOracleSet(ctx)

	// Authorization
	if !set.Contains(c.Oracle) {
		return false, errorsmod.Wrapf(types.ErrUnauthorizedOracle, "%s", c.Oracle)
	}
	if !set.IsActive {
		return false, types.ErrSystemInactive
	}

	// Malformed input is refused before the record is read and never poisons it
	if err := c.Validate(); err != nil {
		return false, errorsmod.Wrap(types.ErrInvalidPaymentData, err.Error())
	}
	digest, err := c.Digest()
	if err != nil {
		return false, errorsmod.Wrap(types.ErrInvalidPaymentData, err.Error())
	}

	telemetry.IncrCounter(1, types.ModuleName, "confirmation", "submitted")

	params := k.GetParams(ctx)
	now := ctx.BlockTime().Unix()

	payment, found := k.GetPendingPayment(ctx, c.TxID)
	if !found {
		if err := k.ensureCapacity(ctx, params); err != nil {
			return false, err
		}

		payment = commontypes.PendingPayment{
			TxID:            c.TxID,
			SenderReference: c.SenderReference,
			Amount:          c.Amount,
			Beneficiary:     c.Beneficiary,
			Action:          c.Action,
			Confirmations:   []string{c.Oracle},
			CreatedAt:       now,
			Status:          commontypes.PaymentStatusPending,
			Digest:          digest,
			Sequence:        k.nextSequence(ctx),
		}
		return k.recordConfirmation(ctx, set, params, payment, c.Oracle)
	}

	switch {
	case payment.Status == commontypes.PaymentStatusPending && payment.IsExpired(now, params.ConfirmationTimeout):
		k.markExpired(ctx, payment)
		return false, errorsmod.Wrapf(types.ErrPaymentExpired, "%s created at %d", c.TxID, payment.CreatedAt)
	case payment.Status == commontypes.PaymentStatusExpired:
		return false, errorsmod.Wrapf(types.ErrPaymentExpired, "%s", c.TxID)
	case payment.Status != commontypes.PaymentStatusPending:
		return false, errorsmod.Wrapf(types.ErrPaymentAlreadyProcessed, "%s is %s", c.TxID, payment.Status)
	}

	if payment.HasConfirmed(c.Oracle) {
		return false, errorsmod.Wrapf(types.ErrAlreadyConfirmed, "%s on %s", c.Oracle, c.TxID)
	}

	// Any disagreement poisons the record for good
	if !bytes.Equal(payment.Digest, digest) {
		k.markRejected(ctx, payment, c.Oracle)
		return false, errorsmod.Wrapf(types.ErrPaymentDataMismatch, "%s reported by %s", c.TxID, c.Oracle)
	}

	payment.Confirmations = append(payment.Confirmations, c.Oracle)
	return k.recordConfirmation(ctx, set, params, payment, c.Oracle)
}

// recordConfirmation persists a record that just gained a confirmation and
// confirms it once quorum is met.
func (k Keeper) recordConfirmation(
	ctx sdk.Context,
	set commontypes.OracleSet,
	params types.Params,
	payment commontypes.PendingPayment,
	oracle string,
) (bool, error) {
	counted := len(payment.Confirmations)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeConfirmationSubmitted,
			sdk.NewAttribute(types.AttributeKeyTxID, payment.TxID),
			sdk.NewAttribute(types.AttributeKeyOracle, oracle),
			sdk.NewAttribute(types.AttributeKeyConfirmations, strconv.Itoa(counted)),
			sdk.NewAttribute(types.AttributeKeyRequired, strconv.FormatUint(uint64(set.RequiredConfirmations), 10)),
		),
	)

	if counted < int(set.RequiredConfirmations) {
		k.setPendingPayment(ctx, payment)
		return false, nil
	}

	return k.confirmPayment(ctx, params, payment, counted)
}

// confirmPayment flips the record to Confirmed and dispatches its action.
// In atomic mode a dispatch failure is reported as "no consensus" and the
// caller discards the cached writes; otherwise the record stays Confirmed
// with a failed dispatch status.
func (k Keeper) confirmPayment(ctx sdk.Context, params types.Params, payment commontypes.PendingPayment, counted int) (bool, error) {
	payment.Status = commontypes.PaymentStatusConfirmed
	payment.ResolvedAt = ctx.BlockTime().Unix()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeConsensusReached,
			sdk.NewAttribute(types.AttributeKeyTxID, payment.TxID),
			sdk.NewAttribute(types.AttributeKeyBeneficiary, payment.Beneficiary),
			sdk.NewAttribute(types.AttributeKeyAmount, payment.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyAction, payment.Action.Kind.String()),
			sdk.NewAttribute(types.AttributeKeyConfirmations, strconv.Itoa(counted)),
		),
	)
	telemetry.IncrCounter(1, types.ModuleName, "confirmation", "consensus")

	k.Logger(ctx).Info("payment confirmed",
		"tx_id", payment.TxID,
		"beneficiary", payment.Beneficiary,
		"amount", payment.Amount.String(),
		"action", payment.Action.String(),
		"confirmations", counted,
	)

	if err := k.LogPaymentConfirmed(ctx, payment); err != nil {
		k.Logger(ctx).Error("failed to log payment confirmation", "error", err)
	}

	dispatchErr := k.dispatch(ctx, &payment)
	k.setPendingPayment(ctx, payment)

	if dispatchErr != nil {
		if params.AtomicDispatch {
			return false, dispatchErr
		}
		return true, dispatchErr
	}
	return true, nil
}

func (k Keeper) markExpired(ctx sdk.Context, payment commontypes.PendingPayment) {
	payment.Status = commontypes.PaymentStatusExpired
	payment.ResolvedAt = ctx.BlockTime().Unix()
	k.setPendingPayment(ctx, payment)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePaymentExpired,
			sdk.NewAttribute(types.AttributeKeyTxID, payment.TxID),
			sdk.NewAttribute(types.AttributeKeyConfirmations, strconv.Itoa(len(payment.Confirmations))),
		),
	)
	telemetry.IncrCounter(1, types.ModuleName, "confirmation", "expired")
	k.Logger(ctx).Info("payment expired", "tx_id", payment.TxID, "created_at", payment.CreatedAt)

	k.logTerminal(ctx, commontypes.AuditPaymentExpired, payment, nil)
}

func (k Keeper) markRejected(ctx sdk.Context, payment commontypes.PendingPayment, oracle string) {
	payment.Status = commontypes.PaymentStatusRejected
	payment.ResolvedAt = ctx.BlockTime().Unix()
	k.setPendingPayment(ctx, payment)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePaymentRejected,
			sdk.NewAttribute(types.AttributeKeyTxID, payment.TxID),
			sdk.NewAttribute(types.AttributeKeyOracle, oracle),
			sdk.NewAttribute(types.AttributeKeyReason, "data mismatch"),
		),
	)
	telemetry.IncrCounter(1, types.ModuleName, "confirmation", "rejected")
	k.Logger(ctx).Info("payment rejected", "tx_id", payment.TxID, "conflicting_oracle", oracle)

	k.logTerminal(ctx, commontypes.AuditPaymentRejected, payment, []commontypes.Attribute{
		{Key: "conflicting_oracle", Value: oracle},
	})
}

// commitsOnError reports whether a failed submission still carries state that
// must be kept.
func (k Keeper) commitsOnError(ctx sdk.Context, err error) bool {
	switch {
	case errors.Is(err, types.ErrPaymentExpired), errors.Is(err, types.ErrPaymentDataMismatch):
		return true
	case types.IsDownstreamError(err):
		return !k.GetParams(ctx).AtomicDispatch
	default:
		return false
	}
}
