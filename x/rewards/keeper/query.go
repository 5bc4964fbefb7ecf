package keeper

import (
	"context"
	"sort"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/payment-oracle/cosmos/x/rewards/types"
)

// Querier serves read-only rewards queries
type Querier struct {
	Keeper
}

// NewQuerier returns a QueryServer backed by the keeper
func NewQuerier(keeper Keeper) Querier {
	return Querier{Keeper: keeper}
}

var _ types.QueryServer = Querier{}

// Balance returns one holder balance
func (q Querier) Balance(goCtx context.Context, req *types.QueryBalanceRequest) (*types.QueryBalanceResponse, error) {
	if req == nil || req.Holder == "" || req.Denom == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "holder and denom cannot be empty")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	return &types.QueryBalanceResponse{Balance: types.Balance{
		Holder: req.Holder,
		Denom:  req.Denom,
		Amount: q.GetCreditBalance(ctx, req.Holder, req.Denom),
	}}, nil
}

// Balances returns every balance of a holder
func (q Querier) Balances(goCtx context.Context, req *types.QueryBalancesRequest) (*types.QueryBalancesResponse, error) {
	if req == nil || req.Holder == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "holder cannot be empty")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	byDenom := q.GetAllCreditBalances(ctx, req.Holder)
	balances := make([]types.Balance, 0, len(byDenom))
	for denom, amount := range byDenom {
		balances = append(balances, types.Balance{Holder: req.Holder, Denom: denom, Amount: amount})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Denom < balances[j].Denom })

	return &types.QueryBalancesResponse{Balances: balances}, nil
}

// Credit returns the credit an origin tx produced
func (q Querier) Credit(goCtx context.Context, req *types.QueryCreditRequest) (*types.QueryCreditResponse, error) {
	if req == nil || req.OriginTx == "" || req.Denom == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "origin tx and denom cannot be empty")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	credit, found := q.GetCredit(ctx, req.OriginTx, req.Denom)
	if !found {
		return nil, errorsmod.Wrapf(types.ErrCreditNotFound, "%s in %s", req.OriginTx, req.Denom)
	}
	return &types.QueryCreditResponse{Credit: credit}, nil
}

// Supply returns the outstanding amount of a denom
func (q Querier) Supply(goCtx context.Context, req *types.QuerySupplyRequest) (*types.QuerySupplyResponse, error) {
	if req == nil || req.Denom == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "denom cannot be empty")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QuerySupplyResponse{Amount: q.GetTotalSupply(ctx, req.Denom)}, nil
}
