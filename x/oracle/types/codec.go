package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
)

// RegisterCodec registers the necessary x/oracle interfaces and concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON serialization.
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgSubmitConfirmation{}, "oracle/MsgSubmitConfirmation", nil)
	cdc.RegisterConcrete(&MsgAddOracle{}, "oracle/MsgAddOracle", nil)
	cdc.RegisterConcrete(&MsgRemoveOracle{}, "oracle/MsgRemoveOracle", nil)
	cdc.RegisterConcrete(&MsgSetRequiredConfirmations{}, "oracle/MsgSetRequiredConfirmations", nil)
	cdc.RegisterConcrete(&MsgSetActiveStatus{}, "oracle/MsgSetActiveStatus", nil)
	cdc.RegisterConcrete(&MsgSetContractAddress{}, "oracle/MsgSetContractAddress", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "oracle/MsgUpdateParams", nil)
	cdc.RegisterConcrete(&MsgRetryDispatch{}, "oracle/MsgRetryDispatch", nil)
	cdc.RegisterConcrete(&MsgTransferOwnership{}, "oracle/MsgTransferOwnership", nil)
}

// RegisterInterfaces registers the x/oracle interfaces types with the interface registry.
// The messages carry no protobuf type URLs and are routed by the app host, so
// there is nothing to register yet.
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	_ = registry
}

var Amino = codec.NewLegacyAmino()

func init() {
	RegisterCodec(Amino)
	Amino.Seal()
}
