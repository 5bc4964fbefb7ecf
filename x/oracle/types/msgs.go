package types

import (
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	commontypes "github.com/payment-oracle/cosmos/types"
)

const (
	TypeMsgSubmitConfirmation       = "submit_confirmation"
	TypeMsgAddOracle                = "add_oracle"
	TypeMsgRemoveOracle             = "remove_oracle"
	TypeMsgSetRequiredConfirmations = "set_required_confirmations"
	TypeMsgSetActiveStatus          = "set_active_status"
	TypeMsgSetContractAddress       = "set_contract_address"
	TypeMsgUpdateParams             = "update_params"
	TypeMsgRetryDispatch            = "retry_dispatch"
	TypeMsgTransferOwnership        = "transfer_ownership"
)

var (
	_ sdk.Msg = &MsgSubmitConfirmation{}
	_ sdk.Msg = &MsgAddOracle{}
	_ sdk.Msg = &MsgRemoveOracle{}
	_ sdk.Msg = &MsgSetRequiredConfirmations{}
	_ sdk.Msg = &MsgSetActiveStatus{}
	_ sdk.Msg = &MsgSetContractAddress{}
	_ sdk.Msg = &MsgUpdateParams{}
	_ sdk.Msg = &MsgRetryDispatch{}
	_ sdk.Msg = &MsgTransferOwnership{}
)

// MsgSubmitConfirmation carries one oracle's attestation of an external payment
type MsgSubmitConfirmation struct {
	Oracle          string             `json:"oracle"`
	TxID            string             `json:"tx_id"`
	SenderReference string             `json:"sender_reference"`
	Amount          math.Int           `json:"amount"`
	Beneficiary     string             `json:"beneficiary"`
	Action          commontypes.Action `json:"action"`
}

// ProtoMessage implements proto.Message
func (msg *MsgSubmitConfirmation) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSubmitConfirmation) Reset() { *msg = MsgSubmitConfirmation{} }

// String implements proto.Message
func (msg *MsgSubmitConfirmation) String() string {
	return fmt.Sprintf("MsgSubmitConfirmation{Oracle: %s, TxID: %s, Action: %s}", msg.Oracle, msg.TxID, msg.Action)
}

// NewMsgSubmitConfirmation creates a new MsgSubmitConfirmation instance
func NewMsgSubmitConfirmation(oracle, txID, senderRef string, amount math.Int, beneficiary string, action commontypes.Action) *MsgSubmitConfirmation {
	return &MsgSubmitConfirmation{
		Oracle:          oracle,
		TxID:            txID,
		SenderReference: senderRef,
		Amount:          amount,
		Beneficiary:     beneficiary,
		Action:          action,
	}
}

// Confirmation converts the message into the keeper input
func (msg MsgSubmitConfirmation) Confirmation() commontypes.Confirmation {
	return commontypes.Confirmation{
		Oracle:          msg.Oracle,
		TxID:            msg.TxID,
		SenderReference: msg.SenderReference,
		Amount:          msg.Amount,
		Beneficiary:     msg.Beneficiary,
		Action:          msg.Action,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSubmitConfirmation) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSubmitConfirmation) Type() string { return TypeMsgSubmitConfirmation }

// GetSigners implements the sdk.Msg interface
func (msg MsgSubmitConfirmation) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Oracle)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSubmitConfirmation) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSubmitConfirmation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid oracle address: %s", err)
	}
	if err := msg.Confirmation().Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidPaymentData, err.Error())
	}
	return nil
}

// MsgAddOracle registers a new oracle signer
type MsgAddOracle struct {
	Owner  string `json:"owner"`
	Oracle string `json:"oracle"`
}

// ProtoMessage implements proto.Message
func (msg *MsgAddOracle) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAddOracle) Reset() { *msg = MsgAddOracle{} }

// String implements proto.Message
func (msg *MsgAddOracle) String() string {
	return fmt.Sprintf("MsgAddOracle{Owner: %s, Oracle: %s}", msg.Owner, msg.Oracle)
}

// NewMsgAddOracle creates a new MsgAddOracle instance
func NewMsgAddOracle(owner, oracle string) *MsgAddOracle {
	return &MsgAddOracle{Owner: owner, Oracle: oracle}
}

// Route implements the sdk.Msg interface
func (msg MsgAddOracle) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgAddOracle) Type() string { return TypeMsgAddOracle }

// GetSigners implements the sdk.Msg interface
func (msg MsgAddOracle) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgAddOracle) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgAddOracle) ValidateBasic() error {
	if err := validateOwner(msg.Owner); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid oracle address: %s", err)
	}
	return nil
}

// MsgRemoveOracle deregisters an oracle signer
type MsgRemoveOracle struct {
	Owner  string `json:"owner"`
	Oracle string `json:"oracle"`
}

// ProtoMessage implements proto.Message
func (msg *MsgRemoveOracle) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRemoveOracle) Reset() { *msg = MsgRemoveOracle{} }

// String implements proto.Message
func (msg *MsgRemoveOracle) String() string {
	return fmt.Sprintf("MsgRemoveOracle{Owner: %s, Oracle: %s}", msg.Owner, msg.Oracle)
}

// NewMsgRemoveOracle creates a new MsgRemoveOracle instance
func NewMsgRemoveOracle(owner, oracle string) *MsgRemoveOracle {
	return &MsgRemoveOracle{Owner: owner, Oracle: oracle}
}

// Route implements the sdk.Msg interface
func (msg MsgRemoveOracle) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgRemoveOracle) Type() string { return TypeMsgRemoveOracle }

// GetSigners implements the sdk.Msg interface
func (msg MsgRemoveOracle) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRemoveOracle) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRemoveOracle) ValidateBasic() error {
	if err := validateOwner(msg.Owner); err != nil {
		return err
	}
	if strings.TrimSpace(msg.Oracle) == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "oracle cannot be empty")
	}
	return nil
}

// MsgSetRequiredConfirmations changes the consensus threshold
type MsgSetRequiredConfirmations struct {
	Owner    string `json:"owner"`
	Required uint32 `json:"required"`
}

// ProtoMessage implements proto.Message
func (msg *MsgSetRequiredConfirmations) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetRequiredConfirmations) Reset() { *msg = MsgSetRequiredConfirmations{} }

// String implements proto.Message
func (msg *MsgSetRequiredConfirmations) String() string {
	return fmt.Sprintf("MsgSetRequiredConfirmations{Owner: %s, Required: %d}", msg.Owner, msg.Required)
}

// NewMsgSetRequiredConfirmations creates a new MsgSetRequiredConfirmations instance
func NewMsgSetRequiredConfirmations(owner string, required uint32) *MsgSetRequiredConfirmations {
	return &MsgSetRequiredConfirmations{Owner: owner, Required: required}
}

// Route implements the sdk.Msg interface
func (msg MsgSetRequiredConfirmations) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSetRequiredConfirmations) Type() string { return TypeMsgSetRequiredConfirmations }

// GetSigners implements the sdk.Msg interface
func (msg MsgSetRequiredConfirmations) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetRequiredConfirmations) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetRequiredConfirmations) ValidateBasic() error {
	if err := validateOwner(msg.Owner); err != nil {
		return err
	}
	if msg.Required == 0 {
		return errorsmod.Wrap(ErrInvalidConfiguration, "required confirmations must be positive")
	}
	return nil
}

// MsgSetActiveStatus toggles the global kill switch
type MsgSetActiveStatus struct {
	Owner  string `json:"owner"`
	Active bool   `json:"active"`
}

// ProtoMessage implements proto.Message
func (msg *MsgSetActiveStatus) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetActiveStatus) Reset() { *msg = MsgSetActiveStatus{} }

// String implements proto.Message
func (msg *MsgSetActiveStatus) String() string {
	return fmt.Sprintf("MsgSetActiveStatus{Owner: %s, Active: %v}", msg.Owner, msg.Active)
}

// NewMsgSetActiveStatus creates a new MsgSetActiveStatus instance
func NewMsgSetActiveStatus(owner string, active bool) *MsgSetActiveStatus {
	return &MsgSetActiveStatus{Owner: owner, Active: active}
}

// Route implements the sdk.Msg interface
func (msg MsgSetActiveStatus) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSetActiveStatus) Type() string { return TypeMsgSetActiveStatus }

// GetSigners implements the sdk.Msg interface
func (msg MsgSetActiveStatus) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetActiveStatus) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetActiveStatus) ValidateBasic() error {
	return validateOwner(msg.Owner)
}

// MsgSetContractAddress points a symbolic downstream name at an address
type MsgSetContractAddress struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ProtoMessage implements proto.Message
func (msg *MsgSetContractAddress) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetContractAddress) Reset() { *msg = MsgSetContractAddress{} }

// String implements proto.Message
func (msg *MsgSetContractAddress) String() string {
	return fmt.Sprintf("MsgSetContractAddress{Owner: %s, Name: %s, Address: %s}", msg.Owner, msg.Name, msg.Address)
}

// NewMsgSetContractAddress creates a new MsgSetContractAddress instance
func NewMsgSetContractAddress(owner, name, address string) *MsgSetContractAddress {
	return &MsgSetContractAddress{Owner: owner, Name: name, Address: address}
}

// Route implements the sdk.Msg interface
func (msg MsgSetContractAddress) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSetContractAddress) Type() string { return TypeMsgSetContractAddress }

// GetSigners implements the sdk.Msg interface
func (msg MsgSetContractAddress) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetContractAddress) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetContractAddress) ValidateBasic() error {
	if err := validateOwner(msg.Owner); err != nil {
		return err
	}
	if strings.TrimSpace(msg.Name) == "" {
		return errorsmod.Wrap(ErrInvalidConfiguration, "contract name cannot be empty")
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid contract address: %s", err)
	}
	return nil
}

// MsgUpdateParams replaces the module parameters
type MsgUpdateParams struct {
	Owner  string `json:"owner"`
	Params Params `json:"params"`
}

// ProtoMessage implements proto.Message
func (msg *MsgUpdateParams) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateParams) Reset() { *msg = MsgUpdateParams{} }

// String implements proto.Message
func (msg *MsgUpdateParams) String() string {
	return fmt.Sprintf("MsgUpdateParams{Owner: %s, Params: %+v}", msg.Owner, msg.Params)
}

// NewMsgUpdateParams creates a new MsgUpdateParams instance
func NewMsgUpdateParams(owner string, params Params) *MsgUpdateParams {
	return &MsgUpdateParams{Owner: owner, Params: params}
}

// Route implements the sdk.Msg interface
func (msg MsgUpdateParams) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgUpdateParams) Type() string { return TypeMsgUpdateParams }

// GetSigners implements the sdk.Msg interface
func (msg MsgUpdateParams) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgUpdateParams) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgUpdateParams) ValidateBasic() error {
	if err := validateOwner(msg.Owner); err != nil {
		return err
	}
	if err := msg.Params.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidConfiguration, err.Error())
	}
	return nil
}

// MsgRetryDispatch re-runs a failed best-effort dispatch
type MsgRetryDispatch struct {
	Owner string `json:"owner"`
	TxID  string `json:"tx_id"`
}

// ProtoMessage implements proto.Message
func (msg *MsgRetryDispatch) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRetryDispatch) Reset() { *msg = MsgRetryDispatch{} }

// String implements proto.Message
func (msg *MsgRetryDispatch) String() string {
	return fmt.Sprintf("MsgRetryDispatch{Owner: %s, TxID: %s}", msg.Owner, msg.TxID)
}

// NewMsgRetryDispatch creates a new MsgRetryDispatch instance
func NewMsgRetryDispatch(owner, txID string) *MsgRetryDispatch {
	return &MsgRetryDispatch{Owner: owner, TxID: txID}
}

// Route implements the sdk.Msg interface
func (msg MsgRetryDispatch) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgRetryDispatch) Type() string { return TypeMsgRetryDispatch }

// GetSigners implements the sdk.Msg interface
func (msg MsgRetryDispatch) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRetryDispatch) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRetryDispatch) ValidateBasic() error {
	if err := validateOwner(msg.Owner); err != nil {
		return err
	}
	if strings.TrimSpace(msg.TxID) == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "tx id cannot be empty")
	}
	return nil
}

// MsgTransferOwnership hands the admin surface to a new account
type MsgTransferOwnership struct {
	Owner    string `json:"owner"`
	NewOwner string `json:"new_owner"`
}

// ProtoMessage implements proto.Message
func (msg *MsgTransferOwnership) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferOwnership) Reset() { *msg = MsgTransferOwnership{} }

// String implements proto.Message
func (msg *MsgTransferOwnership) String() string {
	return fmt.Sprintf("MsgTransferOwnership{Owner: %s, NewOwner: %s}", msg.Owner, msg.NewOwner)
}

// NewMsgTransferOwnership creates a new MsgTransferOwnership instance
func NewMsgTransferOwnership(owner, newOwner string) *MsgTransferOwnership {
	return &MsgTransferOwnership{Owner: owner, NewOwner: newOwner}
}

// Route implements the sdk.Msg interface
func (msg MsgTransferOwnership) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgTransferOwnership) Type() string { return TypeMsgTransferOwnership }

// GetSigners implements the sdk.Msg interface
func (msg MsgTransferOwnership) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Owner)
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgTransferOwnership) GetSignBytes() []byte {
	return mustSortedJSON(msg)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgTransferOwnership) ValidateBasic() error {
	if err := validateOwner(msg.Owner); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewOwner); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid new owner address: %s", err)
	}
	return nil
}

// Helper functions

func validateOwner(owner string) error {
	if _, err := sdk.AccAddressFromBech32(owner); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid owner address: %s", err)
	}
	return nil
}

func mustSigners(addr string) []sdk.AccAddress {
	signer, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{signer}
}

func mustSortedJSON(msg interface{}) []byte {
	bz, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}
