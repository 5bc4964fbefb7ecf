package multisig

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/multisig/keeper"
	multisigtypes "github.com/payment-oracle/cosmos/x/multisig/types"
)

// GenesisState defines the multisig module's genesis state.
type GenesisState struct {
	MintCommands []commontypes.MintCommand `json:"mint_commands"`
}

// DefaultGenesisState returns the default genesis state
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		MintCommands: []commontypes.MintCommand{},
	}
}

// ValidateGenesis validates the multisig genesis state
func ValidateGenesis(data *GenesisState) error {
	seen := make(map[string]bool)
	for _, cmd := range data.MintCommands {
		if cmd.CommandID == "" {
			return fmt.Errorf("command ID cannot be empty")
		}
		if seen[cmd.CommandID] {
			return fmt.Errorf("duplicate command ID: %s", cmd.CommandID)
		}
		seen[cmd.CommandID] = true

		if expected := multisigtypes.CommandID(cmd.Contract, cmd.Recipient, cmd.Tier, cmd.OriginTx); cmd.CommandID != expected {
			return fmt.Errorf("command %s does not match its payload (want %s)", cmd.CommandID, expected)
		}
		if err := commontypes.ValidateAddress(cmd.Recipient); err != nil {
			return fmt.Errorf("command %s: %w", cmd.CommandID, err)
		}

		signers := make(map[string]bool)
		for _, sig := range cmd.Signatures {
			if signers[sig.Signer] {
				return fmt.Errorf("command %s signed twice by %s", cmd.CommandID, sig.Signer)
			}
			signers[sig.Signer] = true
			if len(sig.Signature) != crypto.SignatureLength {
				return fmt.Errorf("command %s has a malformed signature from %s", cmd.CommandID, sig.Signer)
			}
		}

		if cmd.Status != commontypes.CommandStatusPending && len(cmd.Signatures) == 0 {
			return fmt.Errorf("command %s is %s without signatures", cmd.CommandID, cmd.Status)
		}
	}

	return nil
}

// InitGenesis initializes the multisig module's state from a provided genesis state.
func InitGenesis(ctx sdk.Context, k keeper.Keeper, genState *GenesisState) error {
	for _, cmd := range genState.MintCommands {
		if err := k.ImportCommand(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis returns the multisig module's exported genesis.
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) *GenesisState {
	genesis := DefaultGenesisState()
	genesis.MintCommands = k.GetAllCommands(ctx)
	return genesis
}
