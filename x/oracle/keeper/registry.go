package keeper

import (
	"fmt"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// GetOracleSet returns the registry configuration. Before genesis it is the
// zero value: no owner, no oracles and inactive.
func (k Keeper) GetOracleSet(ctx sdk.Context) commontypes.OracleSet {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.OracleSetKey)
	if bz == nil {
		return commontypes.OracleSet{}
	}

	var set commontypes.OracleSet
	if err := set.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode oracle set: %w", err))
	}
	return set
}

// SetOracleSet validates and stores the registry as is, without bumping the
// version. Used by genesis.
func (k Keeper) SetOracleSet(ctx sdk.Context, set commontypes.OracleSet) error {
	if err := set.Validate(k.GetParams(ctx).MaxOracles); err != nil {
		return errorsmod.Wrap(types.ErrInvalidConfiguration, err.Error())
	}
	return k.storeOracleSet(ctx, set)
}

// IsOracle checks whether account is a registered oracle
func (k Keeper) IsOracle(ctx sdk.Context, account string) bool {
	return k.GetOracleSet(ctx).Contains(account)
}

// AddOracle registers account as an oracle. The first oracle added to an empty
// registry also lifts the threshold to 1.
func (k Keeper) AddOracle(ctx sdk.Context, caller, account string) (commontypes.OracleSet, error) {
	set := k.GetOracleSet(ctx)
	if err := requireOwner(set, caller); err != nil {
		return set, err
	}

	if err := commontypes.ValidateAddress(account); err != nil {
		return set, errorsmod.Wrapf(types.ErrInvalidConfiguration, "invalid oracle address: %s", err)
	}

	if set.Contains(account) {
		return set, errorsmod.Wrapf(types.ErrOracleAlreadyExists, "%s", account)
	}

	maxOracles := k.GetParams(ctx).MaxOracles
	if uint32(len(set.Oracles)) >= maxOracles {
		return set, errorsmod.Wrapf(types.ErrMaxOraclesReached, "limit is %d", maxOracles)
	}

	updated := set.WithOracle(account)
	if updated.RequiredConfirmations == 0 {
		updated.RequiredConfirmations = 1
	}

	updated, err := k.writeOracleSet(ctx, updated)
	if err != nil {
		return set, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOracleAdded,
			sdk.NewAttribute(types.AttributeKeyOracle, account),
			sdk.NewAttribute(types.AttributeKeyVersion, strconv.FormatUint(updated.Version, 10)),
		),
	)
	k.logRegistryChange(ctx, commontypes.AuditOracleAdded, account, updated)

	return updated, nil
}

// RemoveOracle deregisters account. Confirmations it already gave stay on
// pending records but stop counting toward quorum.
func (k Keeper) RemoveOracle(ctx sdk.Context, caller, account string) (commontypes.OracleSet, error) {
	set := k.GetOracleSet(ctx)
	if err := requireOwner(set, caller); err != nil {
		return set, err
	}

	if !set.Contains(account) {
		return set, errorsmod.Wrapf(types.ErrOracleNotFound, "%s", account)
	}

	if uint32(len(set.Oracles)-1) < set.RequiredConfirmations {
		return set, errorsmod.Wrapf(types.ErrMinimumOraclesRequired,
			"%d oracles registered, %d confirmations required", len(set.Oracles), set.RequiredConfirmations)
	}

	updated, err := k.writeOracleSet(ctx, set.WithoutOracle(account))
	if err != nil {
		return set, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOracleRemoved,
			sdk.NewAttribute(types.AttributeKeyOracle, account),
			sdk.NewAttribute(types.AttributeKeyVersion, strconv.FormatUint(updated.Version, 10)),
		),
	)
	k.logRegistryChange(ctx, commontypes.AuditOracleRemoved, account, updated)

	return updated, nil
}

// SetRequiredConfirmations changes the quorum size
func (k Keeper) SetRequiredConfirmations(ctx sdk.Context, caller string, required uint32) (commontypes.OracleSet, error) {
	set := k.GetOracleSet(ctx)
	if err := requireOwner(set, caller); err != nil {
		return set, err
	}

	if required == 0 || required > uint32(len(set.Oracles)) {
		return set, errorsmod.Wrapf(types.ErrInvalidConfiguration,
			"required confirmations must be between 1 and %d, got %d", len(set.Oracles), required)
	}

	set.RequiredConfirmations = required
	updated, err := k.writeOracleSet(ctx, set)
	if err != nil {
		return k.GetOracleSet(ctx), err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeThresholdUpdated,
			sdk.NewAttribute(types.AttributeKeyRequired, strconv.FormatUint(uint64(required), 10)),
			sdk.NewAttribute(types.AttributeKeyVersion, strconv.FormatUint(updated.Version, 10)),
		),
	)

	return updated, nil
}

// TransferOwnership hands the admin surface to newOwner
func (k Keeper) TransferOwnership(ctx sdk.Context, caller, newOwner string) (commontypes.OracleSet, error) {
	set := k.GetOracleSet(ctx)
	if err := requireOwner(set, caller); err != nil {
		return set, err
	}

	if err := commontypes.ValidateAddress(newOwner); err != nil {
		return set, errorsmod.Wrapf(types.ErrInvalidConfiguration, "invalid owner address: %s", err)
	}

	set.Owner = newOwner
	updated, err := k.writeOracleSet(ctx, set)
	if err != nil {
		return k.GetOracleSet(ctx), err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOwnershipTransferred,
			sdk.NewAttribute(types.AttributeKeyPreviousOwner, caller),
			sdk.NewAttribute(types.AttributeKeyOwner, newOwner),
		),
	)
	k.Logger(ctx).Info("ownership transferred", "previous_owner", caller, "owner", newOwner)

	return updated, nil
}

// Private helper methods

func requireOwner(set commontypes.OracleSet, caller string) error {
	if set.Owner == "" || caller != set.Owner {
		return errorsmod.Wrapf(types.ErrUnauthorized, "%s", caller)
	}
	return nil
}

// writeOracleSet bumps the version, validates the full object and persists it.
// An invalid set is never written.
func (k Keeper) writeOracleSet(ctx sdk.Context, set commontypes.OracleSet) (commontypes.OracleSet, error) {
	set.Version++
	if err := set.Validate(k.GetParams(ctx).MaxOracles); err != nil {
		return set, errorsmod.Wrap(types.ErrInvalidConfiguration, err.Error())
	}
	if err := k.storeOracleSet(ctx, set); err != nil {
		return set, err
	}
	return set, nil
}

func (k Keeper) storeOracleSet(ctx sdk.Context, set commontypes.OracleSet) error {
	bz, err := set.Marshal()
	if err != nil {
		return err
	}
	ctx.KVStore(k.storeKey).Set(types.OracleSetKey, bz)
	return nil
}

func (k Keeper) logRegistryChange(ctx sdk.Context, eventType, account string, set commontypes.OracleSet) {
	_, err := k.SaveAuditLog(ctx, commontypes.AuditLog{
		EventType: eventType,
		Details: []commontypes.Attribute{
			{Key: "oracle", Value: account},
			{Key: "oracle_count", Value: strconv.Itoa(len(set.Oracles))},
			{Key: "required_confirmations", Value: strconv.FormatUint(uint64(set.RequiredConfirmations), 10)},
			{Key: "version", Value: strconv.FormatUint(set.Version, 10)},
		},
	})
	if err != nil {
		k.Logger(ctx).Error("failed to log registry change", "error", err)
	}
	k.Logger(ctx).Info("oracle registry updated", "event", eventType, "oracle", account, "version", set.Version)
}
