package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/x/oracle/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// SubmitConfirmation handles MsgSubmitConfirmation messages. Failures that
// committed a terminal transition are reported in the response instead of
// failing the transaction, which would roll the transition back.
func (k msgServer) SubmitConfirmation(goCtx context.Context, msg *types.MsgSubmitConfirmation) (*types.MsgSubmitConfirmationResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	consensus, err := k.Keeper.SubmitConfirmation(ctx, msg.Confirmation())
	if err != nil && !k.commitsOnError(ctx, err) {
		return nil, err
	}

	resp := &types.MsgSubmitConfirmationResponse{ConsensusReached: consensus}
	if payment, found := k.GetPendingPayment(ctx, msg.TxID); found {
		resp.Status = payment.Status.String()
		resp.Confirmations = uint32(len(payment.Confirmations))
	}
	if err != nil {
		_, code, _ := errorsmod.ABCIInfo(err, false)
		resp.Code = code
		resp.Error = err.Error()
	}

	return resp, nil
}

// AddOracle handles MsgAddOracle messages
func (k msgServer) AddOracle(goCtx context.Context, msg *types.MsgAddOracle) (*types.MsgAddOracleResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	set, err := k.Keeper.AddOracle(ctx, msg.Owner, msg.Oracle)
	if err != nil {
		return nil, err
	}
	return &types.MsgAddOracleResponse{Version: set.Version}, nil
}

// RemoveOracle handles MsgRemoveOracle messages
func (k msgServer) RemoveOracle(goCtx context.Context, msg *types.MsgRemoveOracle) (*types.MsgRemoveOracleResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	set, err := k.Keeper.RemoveOracle(ctx, msg.Owner, msg.Oracle)
	if err != nil {
		return nil, err
	}
	return &types.MsgRemoveOracleResponse{Version: set.Version}, nil
}

// SetRequiredConfirmations handles MsgSetRequiredConfirmations messages
func (k msgServer) SetRequiredConfirmations(goCtx context.Context, msg *types.MsgSetRequiredConfirmations) (*types.MsgSetRequiredConfirmationsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	set, err := k.Keeper.SetRequiredConfirmations(ctx, msg.Owner, msg.Required)
	if err != nil {
		return nil, err
	}
	return &types.MsgSetRequiredConfirmationsResponse{Version: set.Version}, nil
}

// SetActiveStatus handles MsgSetActiveStatus messages
func (k msgServer) SetActiveStatus(goCtx context.Context, msg *types.MsgSetActiveStatus) (*types.MsgSetActiveStatusResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	set, err := k.Keeper.SetActiveStatus(ctx, msg.Owner, msg.Active)
	if err != nil {
		return nil, err
	}
	return &types.MsgSetActiveStatusResponse{Version: set.Version}, nil
}

// SetContractAddress handles MsgSetContractAddress messages
func (k msgServer) SetContractAddress(goCtx context.Context, msg *types.MsgSetContractAddress) (*types.MsgSetContractAddressResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.Keeper.SetContractAddress(ctx, msg.Owner, msg.Name, msg.Address); err != nil {
		return nil, err
	}
	return &types.MsgSetContractAddressResponse{}, nil
}

// UpdateParams handles MsgUpdateParams messages
func (k msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.Keeper.UpdateParams(ctx, msg.Owner, msg.Params); err != nil {
		return nil, err
	}
	return &types.MsgUpdateParamsResponse{}, nil
}

// RetryDispatch handles MsgRetryDispatch messages
func (k msgServer) RetryDispatch(goCtx context.Context, msg *types.MsgRetryDispatch) (*types.MsgRetryDispatchResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	status, err := k.Keeper.RetryDispatch(ctx, msg.Owner, msg.TxID)
	if err != nil {
		return nil, err
	}
	return &types.MsgRetryDispatchResponse{DispatchStatus: status.String()}, nil
}

// TransferOwnership handles MsgTransferOwnership messages
func (k msgServer) TransferOwnership(goCtx context.Context, msg *types.MsgTransferOwnership) (*types.MsgTransferOwnershipResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	set, err := k.Keeper.TransferOwnership(ctx, msg.Owner, msg.NewOwner)
	if err != nil {
		return nil, err
	}
	return &types.MsgTransferOwnershipResponse{Version: set.Version}, nil
}
