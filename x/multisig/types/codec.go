package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
)

// RegisterCodec registers the necessary x/multisig interfaces and concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON serialization.
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgSignCommand{}, "multisig/MsgSignCommand", nil)
	cdc.RegisterConcrete(&MsgExecuteCommand{}, "multisig/MsgExecuteCommand", nil)
}

// RegisterInterfaces registers the x/multisig interfaces types with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	_ = registry
}

var Amino = codec.NewLegacyAmino()

func init() {
	RegisterCodec(Amino)
	Amino.Seal()
}
