package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// Querier serves read-only oracle queries. None of its methods write to the
// store, so expiry is reported as a computed flag only.
type Querier struct {
	Keeper
}

// NewQuerier returns a QueryServer backed by the keeper
func NewQuerier(keeper Keeper) Querier {
	return Querier{Keeper: keeper}
}

var _ types.QueryServer = Querier{}

// PendingPayment returns a single record by tx id
func (q Querier) PendingPayment(goCtx context.Context, req *types.QueryPendingPaymentRequest) (*types.QueryPendingPaymentResponse, error) {
	if req == nil || req.TxID == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "tx id cannot be empty")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	payment, found := q.GetPendingPayment(ctx, req.TxID)
	if !found {
		return nil, errorsmod.Wrapf(types.ErrPaymentNotFound, "%s", req.TxID)
	}

	return &types.QueryPendingPaymentResponse{
		Payment: payment,
		Expired: payment.IsExpired(ctx.BlockTime().Unix(), q.GetParams(ctx).ConfirmationTimeout),
	}, nil
}

// Payments lists records, optionally filtered by status
func (q Querier) Payments(goCtx context.Context, req *types.QueryPaymentsRequest) (*types.QueryPaymentsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if req == nil || req.Status == "" {
		return &types.QueryPaymentsResponse{Payments: q.GetAllPendingPayments(ctx)}, nil
	}

	status, err := commontypes.ParsePaymentStatus(req.Status)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return &types.QueryPaymentsResponse{Payments: q.GetPaymentsByStatus(ctx, status)}, nil
}

// OracleSet returns the registry configuration
func (q Querier) OracleSet(goCtx context.Context, _ *types.QueryOracleSetRequest) (*types.QueryOracleSetResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryOracleSetResponse{OracleSet: q.GetOracleSet(ctx)}, nil
}

// IsOracle reports whether an account is registered
func (q Querier) IsOracle(goCtx context.Context, req *types.QueryIsOracleRequest) (*types.QueryIsOracleResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "empty request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryIsOracleResponse{IsOracle: q.Keeper.IsOracle(ctx, req.Account)}, nil
}

// ContractAddresses lists configured downstream addresses
func (q Querier) ContractAddresses(goCtx context.Context, _ *types.QueryContractAddressesRequest) (*types.QueryContractAddressesResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryContractAddressesResponse{Contracts: q.GetAllContractAddresses(ctx)}, nil
}

// Params returns the module parameters
func (q Querier) Params(goCtx context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryParamsResponse{Params: q.GetParams(ctx)}, nil
}

// AuditLogs returns audit logs by id, tx id, event type or time range
func (q Querier) AuditLogs(goCtx context.Context, req *types.QueryAuditLogsRequest) (*types.QueryAuditLogsResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "empty request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	var logs []commontypes.AuditLog
	switch {
	case req.ID != 0:
		log, found := q.GetAuditLog(ctx, req.ID)
		if !found {
			return nil, errorsmod.Wrapf(sdkerrors.ErrNotFound, "audit log %d", req.ID)
		}
		logs = []commontypes.AuditLog{log}
	case req.TxID != "":
		logs = q.GetAuditLogsByTxID(ctx, req.TxID)
	case req.EventType != "":
		logs = q.GetAuditLogsByEventType(ctx, req.EventType)
	case req.Since != 0 || req.Until != 0:
		until := req.Until
		if until == 0 {
			until = ctx.BlockTime().Unix()
		}
		if until < req.Since {
			return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "until precedes since")
		}
		logs = q.GetAuditLogsByTimeRange(ctx, req.Since, until)
	default:
		logs = q.GetAllAuditLogs(ctx)
	}

	return &types.QueryAuditLogsResponse{Logs: logs, Total: q.GetAuditLogCount(ctx)}, nil
}
