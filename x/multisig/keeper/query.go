package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/multisig/types"
)

// Querier serves read-only multisig queries
type Querier struct {
	Keeper
}

// NewQuerier returns a QueryServer backed by the keeper
func NewQuerier(keeper Keeper) Querier {
	return Querier{Keeper: keeper}
}

var _ types.QueryServer = Querier{}

// Command returns one mint command together with its signing digest
func (q Querier) Command(goCtx context.Context, req *types.QueryCommandRequest) (*types.QueryCommandResponse, error) {
	if req == nil || req.CommandID == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "command ID cannot be empty")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	command, found := q.GetCommand(ctx, req.CommandID)
	if !found {
		return nil, errorsmod.Wrapf(types.ErrCommandNotFound, "%s", req.CommandID)
	}
	return &types.QueryCommandResponse{
		Command: command,
		Hash:    hexutil.Encode(types.CommandHash(command)),
	}, nil
}

// Commands lists mint commands, optionally filtered by status
func (q Querier) Commands(goCtx context.Context, req *types.QueryCommandsRequest) (*types.QueryCommandsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if req == nil || req.Status == "" {
		return &types.QueryCommandsResponse{Commands: q.GetAllCommands(ctx)}, nil
	}

	var status commontypes.CommandStatus
	if err := status.UnmarshalText([]byte(req.Status)); err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return &types.QueryCommandsResponse{Commands: q.GetCommandsByStatus(ctx, status)}, nil
}
