package oracle

import (
	"bytes"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/keeper"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// GenesisState defines the oracle module's genesis state.
type GenesisState struct {
	Params    types.Params                  `json:"params"`
	OracleSet commontypes.OracleSet         `json:"oracle_set"`
	Contracts []commontypes.ContractAddress `json:"contracts"`
	Payments  []commontypes.PendingPayment  `json:"payments"`
}

// DefaultGenesisState returns the default genesis state. The registry is left
// uninitialised until an owner is configured.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params:    types.DefaultParams(),
		OracleSet: commontypes.OracleSet{Oracles: []string{}},
		Contracts: []commontypes.ContractAddress{},
		Payments:  []commontypes.PendingPayment{},
	}
}

// isInitialised reports whether the genesis carries a registry at all
func (gs GenesisState) isInitialised() bool {
	return gs.OracleSet.Owner != "" || len(gs.OracleSet.Oracles) > 0
}

// ValidateGenesis validates the oracle genesis parameters
func ValidateGenesis(data *GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	if data.isInitialised() {
		if err := data.OracleSet.Validate(data.Params.MaxOracles); err != nil {
			return fmt.Errorf("invalid oracle set: %w", err)
		}
	}

	seenContracts := make(map[string]bool)
	for _, c := range data.Contracts {
		if !types.IsValidContractName(c.Name) {
			return fmt.Errorf("unknown contract name %q", c.Name)
		}
		if seenContracts[c.Name] {
			return fmt.Errorf("duplicate contract %q", c.Name)
		}
		seenContracts[c.Name] = true
		if err := commontypes.ValidateAddress(c.Address); err != nil {
			return fmt.Errorf("invalid %s address: %w", c.Name, err)
		}
	}

	seenTx := make(map[string]bool)
	seenSeq := make(map[uint64]bool)
	for _, p := range data.Payments {
		if p.TxID == "" {
			return fmt.Errorf("payment with empty tx id")
		}
		if seenTx[p.TxID] {
			return fmt.Errorf("duplicate payment %s", p.TxID)
		}
		if seenSeq[p.Sequence] {
			return fmt.Errorf("duplicate payment sequence %d", p.Sequence)
		}
		seenTx[p.TxID] = true
		seenSeq[p.Sequence] = true

		if len(p.Confirmations) == 0 {
			return fmt.Errorf("payment %s has no confirmations", p.TxID)
		}
		digest, err := commontypes.AttestationDigest(p.TxID, p.SenderReference, p.Amount, p.Beneficiary, p.Action)
		if err != nil {
			return fmt.Errorf("payment %s: %w", p.TxID, err)
		}
		if !bytes.Equal(digest, p.Digest) {
			return fmt.Errorf("payment %s digest does not match its attested fields", p.TxID)
		}
		if p.Status == commontypes.PaymentStatusConfirmed && p.DispatchStatus == commontypes.DispatchStatusNone {
			return fmt.Errorf("payment %s confirmed without dispatch", p.TxID)
		}
	}

	if data.Params.MaxStoredPayments > 0 && uint64(len(data.Payments)) > data.Params.MaxStoredPayments {
		return fmt.Errorf("%d payments exceed store capacity %d", len(data.Payments), data.Params.MaxStoredPayments)
	}

	return nil
}

// InitGenesis initializes the oracle module's state from a provided genesis state.
func InitGenesis(ctx sdk.Context, k keeper.Keeper, genState *GenesisState) error {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	if genState.isInitialised() {
		if err := k.SetOracleSet(ctx, genState.OracleSet); err != nil {
			return err
		}
	}

	// Contract addresses are written directly: no owner exists yet to authorise them
	for _, c := range genState.Contracts {
		k.ImportContractAddress(ctx, c)
	}

	for _, p := range genState.Payments {
		if err := k.ImportPayment(ctx, p); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis returns the oracle module's exported genesis.
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) *GenesisState {
	genesis := DefaultGenesisState()

	genesis.Params = k.GetParams(ctx)
	if set := k.GetOracleSet(ctx); set.Owner != "" {
		genesis.OracleSet = set
	}
	genesis.Contracts = k.GetAllContractAddresses(ctx)
	genesis.Payments = k.GetAllPendingPayments(ctx)

	return genesis
}
