package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/x/rewards/types"
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

// BurnCredit handles MsgBurnCredit messages
func (k msgServer) BurnCredit(goCtx context.Context, msg *types.MsgBurnCredit) (*types.MsgBurnCreditResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.Keeper.BurnCredit(ctx, msg.Holder, msg.Denom, msg.Amount); err != nil {
		return nil, err
	}

	remaining := k.GetCreditBalance(ctx, msg.Holder, msg.Denom)
	return &types.MsgBurnCreditResponse{Remaining: remaining.String()}, nil
}

// TransferCredit handles MsgTransferCredit messages
func (k msgServer) TransferCredit(goCtx context.Context, msg *types.MsgTransferCredit) (*types.MsgTransferCreditResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.Keeper.TransferCredit(ctx, msg.From, msg.To, msg.Denom, msg.Amount); err != nil {
		return nil, err
	}
	return &types.MsgTransferCreditResponse{}, nil
}
