package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// RetryDispatch re-runs the dispatcher for a Confirmed record whose
// best-effort dispatch failed.
func (k Keeper) RetryDispatch(ctx sdk.Context, caller, txID string) (commontypes.DispatchStatus, error) {
	if err := requireOwner(k.GetOracleSet(ctx), caller); err != nil {
		return commontypes.DispatchStatusNone, err
	}

	payment, found := k.GetPendingPayment(ctx, txID)
	if !found {
		return commontypes.DispatchStatusNone, errorsmod.Wrapf(types.ErrPaymentNotFound, "%s", txID)
	}

	if payment.Status != commontypes.PaymentStatusConfirmed {
		return payment.DispatchStatus, errorsmod.Wrapf(types.ErrDispatchNotRetryable, "%s is %s", txID, payment.Status)
	}
	if payment.DispatchStatus != commontypes.DispatchStatusFailed {
		return payment.DispatchStatus, errorsmod.Wrapf(types.ErrDispatchNotRetryable, "%s dispatch is %s", txID, payment.DispatchStatus)
	}

	err := k.dispatch(ctx, &payment)
	k.setPendingPayment(ctx, payment)

	return payment.DispatchStatus, err
}

// dispatch invokes the downstream effect of a confirmed payment exactly once.
// The downstream call runs in its own cached context so a failing keeper
// cannot leave partial writes behind.
func (k Keeper) dispatch(ctx sdk.Context, payment *commontypes.PendingPayment) error {
	cacheCtx, write := ctx.CacheContext()

	if err := k.dispatchAction(cacheCtx, *payment); err != nil {
		payment.DispatchStatus = commontypes.DispatchStatusFailed
		payment.DispatchError = err.Error()

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeDispatchFailed,
				sdk.NewAttribute(types.AttributeKeyTxID, payment.TxID),
				sdk.NewAttribute(types.AttributeKeyAction, payment.Action.Kind.String()),
				sdk.NewAttribute(types.AttributeKeyReason, err.Error()),
			),
		)
		telemetry.IncrCounter(1, types.ModuleName, "dispatch", "failure")
		k.Logger(ctx).Error("dispatch failed", "tx_id", payment.TxID, "action", payment.Action.String(), "error", err)
		k.logTerminal(ctx, commontypes.AuditDispatchFailed, *payment, []commontypes.Attribute{
			{Key: "error", Value: err.Error()},
		})
		return err
	}

	write()
	payment.DispatchStatus = commontypes.DispatchStatusDispatched
	payment.DispatchError = ""

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeActionDispatched,
			sdk.NewAttribute(types.AttributeKeyTxID, payment.TxID),
			sdk.NewAttribute(types.AttributeKeyAction, payment.Action.Kind.String()),
			sdk.NewAttribute(types.AttributeKeyBeneficiary, payment.Beneficiary),
		),
	)
	telemetry.IncrCounter(1, types.ModuleName, "dispatch", "success")
	k.logTerminal(ctx, commontypes.AuditActionDispatched, *payment, nil)

	return nil
}

// dispatchAction matches every action kind to its downstream keeper
func (k Keeper) dispatchAction(ctx sdk.Context, payment commontypes.PendingPayment) error {
	action := payment.Action

	switch action.Kind {
	case commontypes.ActionKindStakeCredit:
		contract, err := k.resolveContract(ctx, types.ContractStaking, k.stakingKeeper != nil)
		if err != nil {
			return err
		}
		return downstreamErr(types.ContractStaking,
			k.stakingKeeper.CreditStake(ctx, contract, payment.Beneficiary, action.Pool, action.Amount, payment.TxID))

	case commontypes.ActionKindNFTPurchase:
		contract, err := k.resolveContract(ctx, types.ContractNFT, k.nftKeeper != nil)
		if err != nil {
			return err
		}
		command, err := k.nftKeeper.GenerateMintCommand(ctx, contract, payment.Beneficiary, action.Tier, payment.TxID)
		if err != nil {
			return downstreamErr(types.ContractNFT, err)
		}
		k.Logger(ctx).Debug("mint command generated", "tx_id", payment.TxID, "command_id", command.CommandID)
		return nil

	case commontypes.ActionKindLotteryTicket:
		contract, err := k.resolveContract(ctx, types.ContractLottery, k.lotteryKeeper != nil)
		if err != nil {
			return err
		}
		return downstreamErr(types.ContractLottery,
			k.lotteryKeeper.PurchaseTickets(ctx, contract, payment.Beneficiary, action.Quantity, payment.TxID))

	case commontypes.ActionKindGameCredit:
		contract, err := k.resolveContract(ctx, types.ContractGame, k.gameKeeper != nil)
		if err != nil {
			return err
		}
		return downstreamErr(types.ContractGame,
			k.gameKeeper.CreditSpins(ctx, contract, payment.Beneficiary, action.Tier, action.Spins, payment.TxID))

	case commontypes.ActionKindGovernanceDeposit:
		contract, err := k.resolveContract(ctx, types.ContractGovernance, k.governanceKeeper != nil)
		if err != nil {
			return err
		}
		return downstreamErr(types.ContractGovernance,
			k.governanceKeeper.Deposit(ctx, contract, payment.Beneficiary, payment.Amount, payment.TxID))

	case commontypes.ActionKindCustom:
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeCustomAction,
				sdk.NewAttribute(types.AttributeKeyTxID, payment.TxID),
				sdk.NewAttribute(types.AttributeKeyHook, action.Hook),
				sdk.NewAttribute(types.AttributeKeyBeneficiary, payment.Beneficiary),
				sdk.NewAttribute(types.AttributeKeyAmount, payment.Amount.String()),
			),
		)
		return nil

	default:
		return errorsmod.Wrapf(types.ErrInvalidPaymentData, "unknown action kind %s", action.Kind)
	}
}

func (k Keeper) resolveContract(ctx sdk.Context, name string, wired bool) (string, error) {
	if !wired {
		return "", errorsmod.Wrapf(types.ErrContractNotConfigured, "no %s keeper wired", name)
	}
	address, found := k.GetContractAddress(ctx, name)
	if !found {
		return "", errorsmod.Wrapf(types.ErrContractNotConfigured, "%s address not set", name)
	}
	return address, nil
}

func downstreamErr(contract string, err error) error {
	if err == nil {
		return nil
	}
	return errorsmod.Wrap(types.ErrCrossContractCallFailed, fmt.Sprintf("%s: %s", contract, err))
}
