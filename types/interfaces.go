package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// OracleKeeper defines the expected interface for the oracle module
type OracleKeeper interface {
	// Registry
	IsOracle(ctx sdk.Context, account string) bool
	GetOracleSet(ctx sdk.Context) OracleSet

	// Audit trail
	SaveAuditLog(ctx sdk.Context, log AuditLog) (uint64, error)
}

// RewardsKeeper defines the expected interface for the rewards module
type RewardsKeeper interface {
	// Credit issuance, one per (origin tx, denom)
	CreditStake(ctx sdk.Context, contract, beneficiary, pool string, amount math.Int, originTx string) error
	PurchaseTickets(ctx sdk.Context, contract, buyer string, quantity uint32, originTx string) error
	CreditSpins(ctx sdk.Context, contract, player string, tier, spins uint32, originTx string) error
	Deposit(ctx sdk.Context, contract, depositor string, amount math.Int, originTx string) error

	// Ledger operations
	BurnCredit(ctx sdk.Context, holder, denom string, amount math.Int) error
	TransferCredit(ctx sdk.Context, from, to, denom string, amount math.Int) error
	GetCreditBalance(ctx sdk.Context, holder, denom string) math.Int
	GetAllCreditBalances(ctx sdk.Context, holder string) map[string]math.Int
}

// MultisigKeeper defines the expected interface for the multisig module
type MultisigKeeper interface {
	GenerateMintCommand(ctx sdk.Context, contract, recipient string, tier uint32, originTx string) (MintCommand, error)
	AddSignatureToCommand(ctx sdk.Context, commandID, signer string, signature []byte) error
	MarkCommandExecuted(ctx sdk.Context, commandID, caller string) error
	GetCommand(ctx sdk.Context, commandID string) (MintCommand, bool)
}
