package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
)

// RegisterCodec registers the necessary x/rewards interfaces and concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON serialization.
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgBurnCredit{}, "rewards/MsgBurnCredit", nil)
	cdc.RegisterConcrete(&MsgTransferCredit{}, "rewards/MsgTransferCredit", nil)
}

// RegisterInterfaces registers the x/rewards interfaces types with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	_ = registry
}

var Amino = codec.NewLegacyAmino()

func init() {
	RegisterCodec(Amino)
	Amino.Seal()
}
