package types

import (
	"fmt"
	"strings"

	commontypes "github.com/payment-oracle/cosmos/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "rewards"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store key prefixes
var (
	// CreditKeyPrefix is the prefix for credit records, keyed by origin tx and denom
	CreditKeyPrefix = []byte{0x01}

	// CreditBalanceKeyPrefix is the prefix for holder balances
	CreditBalanceKeyPrefix = []byte{0x02}

	// TotalSupplyKeyPrefix is the prefix for per-denom supply
	TotalSupplyKeyPrefix = []byte{0x03}
)

// Credit denominations
const (
	StakeDenomPrefix = commontypes.StakeDenomPrefix
	SpinDenomPrefix  = "spin"
	TicketDenom      = "ticket"
	GovDepositDenom  = "gov-deposit"
)

// StakeDenom returns the denom of stake credited to a pool
func StakeDenom(pool string) string {
	return commontypes.StakeDenom(pool)
}

// SpinDenom returns the denom of spins of a game tier
func SpinDenom(tier uint32) string {
	return fmt.Sprintf("%s/%d", SpinDenomPrefix, tier)
}

// GetCreditKey returns the store key for the credit an origin tx produced in
// a denom. The origin tx is length prefixed since tx ids are free-form.
func GetCreditKey(originTx, denom string) []byte {
	key := append([]byte{}, CreditKeyPrefix...)
	key = append(key, byte(len(originTx)))
	key = append(key, []byte(originTx)...)
	return append(key, []byte(denom)...)
}

// GetCreditBalancePrefix returns the prefix of every balance of a holder
func GetCreditBalancePrefix(holder string) []byte {
	key := append([]byte{}, CreditBalanceKeyPrefix...)
	key = append(key, []byte(holder)...)
	return append(key, '/')
}

// GetCreditBalanceKey returns the store key for a holder's credit balance
func GetCreditBalanceKey(holder, denom string) []byte {
	return append(GetCreditBalancePrefix(holder), []byte(denom)...)
}

// SplitCreditBalanceKey recovers holder and denom from a balance key.
// Holders are bech32 addresses and never contain a slash.
func SplitCreditBalanceKey(key []byte) (holder, denom string) {
	rest := string(key[len(CreditBalanceKeyPrefix):])
	idx := strings.IndexByte(rest, '/')
	if idx == -1 {
		return rest, ""
	}
	return rest[:idx], rest[idx+1:]
}

// GetTotalSupplyKey returns the store key for the supply of a denom
func GetTotalSupplyKey(denom string) []byte {
	return append(append([]byte{}, TotalSupplyKeyPrefix...), []byte(denom)...)
}
