package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
)

// StakingKeeper credits confirmed payments to a staking pool
type StakingKeeper interface {
	CreditStake(ctx sdk.Context, contract, beneficiary, pool string, amount math.Int, originTx string) error
}

// NFTKeeper turns confirmed NFT purchases into mint commands
type NFTKeeper interface {
	GenerateMintCommand(ctx sdk.Context, contract, recipient string, tier uint32, originTx string) (commontypes.MintCommand, error)
}

// LotteryKeeper issues lottery tickets
type LotteryKeeper interface {
	PurchaseTickets(ctx sdk.Context, contract, buyer string, quantity uint32, originTx string) error
}

// GameKeeper credits spins to a player
type GameKeeper interface {
	CreditSpins(ctx sdk.Context, contract, player string, tier, spins uint32, originTx string) error
}

// GovernanceKeeper records governance deposits
type GovernanceKeeper interface {
	Deposit(ctx sdk.Context, contract, depositor string, amount math.Int, originTx string) error
}
