package types

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	TypeMsgSignCommand    = "sign_command"
	TypeMsgExecuteCommand = "execute_command"
)

var (
	_ sdk.Msg = &MsgSignCommand{}
	_ sdk.Msg = &MsgExecuteCommand{}
)

// MsgSignCommand carries an oracle's signature over a mint command
type MsgSignCommand struct {
	Signer    string        `json:"signer"`
	CommandID string        `json:"command_id"`
	Signature hexutil.Bytes `json:"signature"`
}

// ProtoMessage implements proto.Message
func (msg *MsgSignCommand) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSignCommand) Reset() { *msg = MsgSignCommand{} }

// String implements proto.Message
func (msg *MsgSignCommand) String() string {
	return fmt.Sprintf("MsgSignCommand{Signer: %s, CommandID: %s}", msg.Signer, msg.CommandID)
}

// NewMsgSignCommand creates a new MsgSignCommand instance
func NewMsgSignCommand(signer, commandID string, signature []byte) *MsgSignCommand {
	return &MsgSignCommand{
		Signer:    signer,
		CommandID: commandID,
		Signature: signature,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSignCommand) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSignCommand) Type() string {
	return TypeMsgSignCommand
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSignCommand) GetSigners() []sdk.AccAddress {
	signer, err := sdk.AccAddressFromBech32(msg.Signer)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{signer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSignCommand) GetSignBytes() []byte {
	bz, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSignCommand) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid signer address: %s", err)
	}

	if msg.CommandID == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "command ID cannot be empty")
	}

	if len(msg.Signature) != crypto.SignatureLength {
		return errorsmod.Wrapf(ErrInvalidSignature, "signature must be %d bytes", crypto.SignatureLength)
	}

	return nil
}

// MsgExecuteCommand reports that a signed command was carried out
type MsgExecuteCommand struct {
	Executor  string `json:"executor"`
	CommandID string `json:"command_id"`
}

// ProtoMessage implements proto.Message
func (msg *MsgExecuteCommand) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExecuteCommand) Reset() { *msg = MsgExecuteCommand{} }

// String implements proto.Message
func (msg *MsgExecuteCommand) String() string {
	return fmt.Sprintf("MsgExecuteCommand{Executor: %s, CommandID: %s}", msg.Executor, msg.CommandID)
}

// NewMsgExecuteCommand creates a new MsgExecuteCommand instance
func NewMsgExecuteCommand(executor, commandID string) *MsgExecuteCommand {
	return &MsgExecuteCommand{
		Executor:  executor,
		CommandID: commandID,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgExecuteCommand) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgExecuteCommand) Type() string {
	return TypeMsgExecuteCommand
}

// GetSigners implements the sdk.Msg interface
func (msg MsgExecuteCommand) GetSigners() []sdk.AccAddress {
	executor, err := sdk.AccAddressFromBech32(msg.Executor)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{executor}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgExecuteCommand) GetSignBytes() []byte {
	bz, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgExecuteCommand) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Executor); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid executor address: %s", err)
	}

	if msg.CommandID == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "command ID cannot be empty")
	}

	return nil
}
