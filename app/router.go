package app

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	multisigkeeper "github.com/payment-oracle/cosmos/x/multisig/keeper"
	multisigtypes "github.com/payment-oracle/cosmos/x/multisig/types"
	oraclekeeper "github.com/payment-oracle/cosmos/x/oracle/keeper"
	oracletypes "github.com/payment-oracle/cosmos/x/oracle/types"
	rewardskeeper "github.com/payment-oracle/cosmos/x/rewards/keeper"
	rewardstypes "github.com/payment-oracle/cosmos/x/rewards/types"
)

// TxResult is the outcome of delivering one message
type TxResult struct {
	Code      uint32      `json:"code"`
	Codespace string      `json:"codespace,omitempty"`
	Log       string      `json:"log,omitempty"`
	Response  interface{} `json:"response,omitempty"`
	Events    sdk.Events  `json:"events,omitempty"`
}

// IsOK reports whether the message succeeded
func (r TxResult) IsOK() bool { return r.Code == 0 }

// DeliverMsg validates and executes msg in the current block. State changes
// and events are kept only when the handler returns no error.
func (app *App) DeliverMsg(msg sdk.Msg) TxResult {
	if app.block == nil {
		return errorResult(errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "no block in progress"))
	}

	if m, ok := msg.(sdk.HasValidateBasic); ok {
		if err := m.ValidateBasic(); err != nil {
			return errorResult(err)
		}
	}

	msgCtx := app.block.ctx.WithEventManager(sdk.NewEventManager())
	cacheCtx, write := msgCtx.CacheContext()

	resp, err := app.route(cacheCtx, msg)
	if err != nil {
		app.logger.Debug("message failed", "msg", msg.String(), "error", err)
		return errorResult(err)
	}

	write()
	return TxResult{
		Response: resp,
		Events:   msgCtx.EventManager().Events(),
	}
}

// route dispatches msg to its module's message server
func (app *App) route(ctx sdk.Context, msg sdk.Msg) (interface{}, error) {
	oracleMsgs := oraclekeeper.NewMsgServerImpl(*app.OracleKeeper)
	rewardsMsgs := rewardskeeper.NewMsgServerImpl(*app.RewardsKeeper)
	multisigMsgs := multisigkeeper.NewMsgServerImpl(*app.MultisigKeeper)

	switch msg := msg.(type) {
	case *oracletypes.MsgSubmitConfirmation:
		return oracleMsgs.SubmitConfirmation(ctx, msg)
	case *oracletypes.MsgAddOracle:
		return oracleMsgs.AddOracle(ctx, msg)
	case *oracletypes.MsgRemoveOracle:
		return oracleMsgs.RemoveOracle(ctx, msg)
	case *oracletypes.MsgSetRequiredConfirmations:
		return oracleMsgs.SetRequiredConfirmations(ctx, msg)
	case *oracletypes.MsgSetActiveStatus:
		return oracleMsgs.SetActiveStatus(ctx, msg)
	case *oracletypes.MsgSetContractAddress:
		return oracleMsgs.SetContractAddress(ctx, msg)
	case *oracletypes.MsgUpdateParams:
		return oracleMsgs.UpdateParams(ctx, msg)
	case *oracletypes.MsgRetryDispatch:
		return oracleMsgs.RetryDispatch(ctx, msg)
	case *oracletypes.MsgTransferOwnership:
		return oracleMsgs.TransferOwnership(ctx, msg)

	case *rewardstypes.MsgBurnCredit:
		return rewardsMsgs.BurnCredit(ctx, msg)
	case *rewardstypes.MsgTransferCredit:
		return rewardsMsgs.TransferCredit(ctx, msg)

	case *multisigtypes.MsgSignCommand:
		return multisigMsgs.SignCommand(ctx, msg)
	case *multisigtypes.MsgExecuteCommand:
		return multisigMsgs.ExecuteCommand(ctx, msg)

	default:
		return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized message type %T", msg)
	}
}

func errorResult(err error) TxResult {
	codespace, code, log := errorsmod.ABCIInfo(err, false)
	return TxResult{
		Code:      code,
		Codespace: codespace,
		Log:       log,
	}
}
