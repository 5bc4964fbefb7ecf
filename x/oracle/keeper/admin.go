package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// SetContractAddress points a symbolic downstream name at an address
func (k Keeper) SetContractAddress(ctx sdk.Context, caller, name, address string) error {
	if err := requireOwner(k.GetOracleSet(ctx), caller); err != nil {
		return err
	}

	if !types.IsValidContractName(name) {
		return errorsmod.Wrapf(types.ErrInvalidConfiguration, "unknown contract %q", name)
	}
	if err := commontypes.ValidateAddress(address); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidConfiguration, "invalid %s address: %s", name, err)
	}

	k.setContractAddress(ctx, name, address)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractAddressSet,
			sdk.NewAttribute(types.AttributeKeyContract, name),
			sdk.NewAttribute(types.AttributeKeyAddress, address),
		),
	)
	k.Logger(ctx).Info("contract address updated", "contract", name, "address", address)

	return nil
}

// GetContractAddress returns the address configured for a symbolic name
func (k Keeper) GetContractAddress(ctx sdk.Context, name string) (string, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetContractAddressKey(name))
	if bz == nil {
		return "", false
	}
	return string(bz), true
}

// GetAllContractAddresses returns every configured address in name order
func (k Keeper) GetAllContractAddresses(ctx sdk.Context) []commontypes.ContractAddress {
	contracts := make([]commontypes.ContractAddress, 0, len(types.ContractNames))
	for _, name := range types.ContractNames {
		if address, found := k.GetContractAddress(ctx, name); found {
			contracts = append(contracts, commontypes.ContractAddress{Name: name, Address: address})
		}
	}
	return contracts
}

// SetActiveStatus toggles the global kill switch
func (k Keeper) SetActiveStatus(ctx sdk.Context, caller string, active bool) (commontypes.OracleSet, error) {
	set := k.GetOracleSet(ctx)
	if err := requireOwner(set, caller); err != nil {
		return set, err
	}

	set.IsActive = active
	updated, err := k.writeOracleSet(ctx, set)
	if err != nil {
		return k.GetOracleSet(ctx), err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeActiveStatusUpdated,
			sdk.NewAttribute(types.AttributeKeyActive, strconv.FormatBool(active)),
			sdk.NewAttribute(types.AttributeKeyVersion, strconv.FormatUint(updated.Version, 10)),
		),
	)
	k.Logger(ctx).Info("active status updated", "active", active)

	return updated, nil
}

// UpdateParams replaces the module parameters. The oracle cap cannot drop
// below the current registry size.
func (k Keeper) UpdateParams(ctx sdk.Context, caller string, params types.Params) error {
	set := k.GetOracleSet(ctx)
	if err := requireOwner(set, caller); err != nil {
		return err
	}

	if err := params.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidConfiguration, err.Error())
	}
	if uint32(len(set.Oracles)) > params.MaxOracles {
		return errorsmod.Wrapf(types.ErrInvalidConfiguration,
			"max oracles %d below current registry size %d", params.MaxOracles, len(set.Oracles))
	}

	if err := k.SetParams(ctx, params); err != nil {
		return errorsmod.Wrap(types.ErrInvalidConfiguration, err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdated,
			sdk.NewAttribute(types.AttributeKeyOwner, caller),
		),
	)
	k.Logger(ctx).Info("params updated",
		"confirmation_timeout", params.ConfirmationTimeout,
		"max_oracles", params.MaxOracles,
		"max_stored_payments", params.MaxStoredPayments,
		"atomic_dispatch", params.AtomicDispatch,
	)

	return nil
}

func (k Keeper) setContractAddress(ctx sdk.Context, name, address string) {
	ctx.KVStore(k.storeKey).Set(types.GetContractAddressKey(name), []byte(address))
}

// ImportContractAddress stores a genesis contract address without an owner check
func (k Keeper) ImportContractAddress(ctx sdk.Context, contract commontypes.ContractAddress) {
	k.setContractAddress(ctx, contract.Name, contract.Address)
}
