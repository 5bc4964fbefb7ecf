package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/multisig/types"
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

// SignCommand handles MsgSignCommand messages
func (k msgServer) SignCommand(goCtx context.Context, msg *types.MsgSignCommand) (*types.MsgSignCommandResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.AddSignatureToCommand(ctx, msg.CommandID, msg.Signer, msg.Signature); err != nil {
		return nil, err
	}

	command, _ := k.GetCommand(ctx, msg.CommandID)
	return &types.MsgSignCommandResponse{
		SignatureCount: len(command.Signatures),
		ThresholdMet:   command.Status == commontypes.CommandStatusSigned,
	}, nil
}

// ExecuteCommand handles MsgExecuteCommand messages
func (k msgServer) ExecuteCommand(goCtx context.Context, msg *types.MsgExecuteCommand) (*types.MsgExecuteCommandResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := k.MarkCommandExecuted(ctx, msg.CommandID, msg.Executor); err != nil {
		return nil, err
	}
	return &types.MsgExecuteCommandResponse{}, nil
}
