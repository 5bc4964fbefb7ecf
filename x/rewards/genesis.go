package rewards

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/rewards/keeper"
	"github.com/payment-oracle/cosmos/x/rewards/types"
)

// GenesisState defines the rewards module's genesis state.
type GenesisState struct {
	Credits  []commontypes.Credit `json:"credits"`
	Balances []types.Balance      `json:"balances"`
}

// DefaultGenesisState returns the default genesis state
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Credits:  []commontypes.Credit{},
		Balances: []types.Balance{},
	}
}

// ValidateGenesis validates the rewards genesis state
func ValidateGenesis(data *GenesisState) error {
	seenCredits := make(map[string]bool)
	for _, c := range data.Credits {
		if c.OriginTx == "" {
			return fmt.Errorf("credit with empty origin tx")
		}
		if err := sdk.ValidateDenom(c.Denom); err != nil {
			return fmt.Errorf("credit %s: %w", c.OriginTx, err)
		}
		if c.Amount.IsNil() || !c.Amount.IsPositive() {
			return fmt.Errorf("credit %s in %s must be positive", c.OriginTx, c.Denom)
		}
		key := c.OriginTx + "\x00" + c.Denom
		if seenCredits[key] {
			return fmt.Errorf("duplicate credit %s in %s", c.OriginTx, c.Denom)
		}
		seenCredits[key] = true
	}

	seenBalances := make(map[string]bool)
	for _, b := range data.Balances {
		if err := commontypes.ValidateAddress(b.Holder); err != nil {
			return fmt.Errorf("invalid balance holder: %w", err)
		}
		if err := sdk.ValidateDenom(b.Denom); err != nil {
			return fmt.Errorf("balance of %s: %w", b.Holder, err)
		}
		if b.Amount.IsNil() || !b.Amount.IsPositive() {
			return fmt.Errorf("balance of %s in %s must be positive", b.Holder, b.Denom)
		}
		key := b.Holder + "/" + b.Denom
		if seenBalances[key] {
			return fmt.Errorf("duplicate balance %s", key)
		}
		seenBalances[key] = true
	}

	return nil
}

// InitGenesis initializes the rewards module's state from a provided genesis state.
// Supply is rebuilt from the balances.
func InitGenesis(ctx sdk.Context, k keeper.Keeper, genState *GenesisState) error {
	for _, c := range genState.Credits {
		if err := k.ImportCredit(ctx, c); err != nil {
			return err
		}
	}
	for _, b := range genState.Balances {
		k.ImportBalance(ctx, b)
	}
	return nil
}

// ExportGenesis returns the rewards module's exported genesis.
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) *GenesisState {
	genesis := DefaultGenesisState()
	genesis.Credits = k.GetAllCredits(ctx)
	genesis.Balances = k.GetAllBalances(ctx)
	return genesis
}
