package types

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const (
	TypeMsgBurnCredit     = "burn_credit"
	TypeMsgTransferCredit = "transfer_credit"
)

var (
	_ sdk.Msg = &MsgBurnCredit{}
	_ sdk.Msg = &MsgTransferCredit{}
)

// MsgBurnCredit defines a message for redeeming credits
type MsgBurnCredit struct {
	Holder string   `json:"holder"`
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// ProtoMessage implements proto.Message
func (msg *MsgBurnCredit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBurnCredit) Reset() { *msg = MsgBurnCredit{} }

// String implements proto.Message
func (msg *MsgBurnCredit) String() string {
	return fmt.Sprintf("MsgBurnCredit{Holder: %s, Denom: %s, Amount: %s}", msg.Holder, msg.Denom, msg.Amount)
}

// NewMsgBurnCredit creates a new MsgBurnCredit instance
func NewMsgBurnCredit(holder, denom string, amount math.Int) *MsgBurnCredit {
	return &MsgBurnCredit{
		Holder: holder,
		Denom:  denom,
		Amount: amount,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgBurnCredit) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgBurnCredit) Type() string { return TypeMsgBurnCredit }

// GetSigners implements the sdk.Msg interface
func (msg MsgBurnCredit) GetSigners() []sdk.AccAddress {
	holder, err := sdk.AccAddressFromBech32(msg.Holder)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{holder}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgBurnCredit) GetSignBytes() []byte {
	bz, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgBurnCredit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid holder address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidDenom, err.Error())
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "burn amount must be positive")
	}
	return nil
}

// MsgTransferCredit defines a message for moving credits between holders
type MsgTransferCredit struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// ProtoMessage implements proto.Message
func (msg *MsgTransferCredit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferCredit) Reset() { *msg = MsgTransferCredit{} }

// String implements proto.Message
func (msg *MsgTransferCredit) String() string {
	return fmt.Sprintf("MsgTransferCredit{From: %s, To: %s, Denom: %s, Amount: %s}", msg.From, msg.To, msg.Denom, msg.Amount)
}

// NewMsgTransferCredit creates a new MsgTransferCredit instance
func NewMsgTransferCredit(from, to, denom string, amount math.Int) *MsgTransferCredit {
	return &MsgTransferCredit{
		From:   from,
		To:     to,
		Denom:  denom,
		Amount: amount,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgTransferCredit) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgTransferCredit) Type() string { return TypeMsgTransferCredit }

// GetSigners implements the sdk.Msg interface
func (msg MsgTransferCredit) GetSigners() []sdk.AccAddress {
	from, err := sdk.AccAddressFromBech32(msg.From)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{from}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgTransferCredit) GetSignBytes() []byte {
	bz, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgTransferCredit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid recipient address: %s", err)
	}
	if msg.From == msg.To {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "sender and recipient must differ")
	}
	if err := sdk.ValidateDenom(msg.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidDenom, err.Error())
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "transfer amount must be positive")
	}
	return nil
}
