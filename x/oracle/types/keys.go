package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "oracle"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store key prefixes
var (
	// OracleSetKey stores the registry configuration object
	OracleSetKey = []byte{0x01}

	// ParamsKey stores the module parameters
	ParamsKey = []byte{0x02}

	// PaymentKeyPrefix is the prefix for pending payment storage
	PaymentKeyPrefix = []byte{0x03}

	// PaymentSequenceKeyPrefix indexes payments by creation order
	PaymentSequenceKeyPrefix = []byte{0x04}

	// PaymentCountKey stores the number of stored payments
	PaymentCountKey = []byte{0x05}

	// NextSequenceKey stores the next payment sequence number
	NextSequenceKey = []byte{0x06}

	// ContractAddressKeyPrefix is the prefix for downstream contract addresses
	ContractAddressKeyPrefix = []byte{0x07}

	// AuditLogKeyPrefix is the prefix for audit log storage
	AuditLogKeyPrefix = []byte{0x10}

	// AuditLogCounterKey is the key for the audit log counter
	AuditLogCounterKey = []byte{0x11}

	// AuditLogByTxKeyPrefix indexes audit logs by external tx id
	AuditLogByTxKeyPrefix = []byte{0x12}

	// AuditLogByTypeKeyPrefix indexes audit logs by event type
	AuditLogByTypeKeyPrefix = []byte{0x13}

	// AuditLogByTimeKeyPrefix indexes audit logs by block time
	AuditLogByTimeKeyPrefix = []byte{0x14}
)

// Symbolic downstream contract names
const (
	ContractStaking    = "staking"
	ContractNFT        = "nft"
	ContractLottery    = "lottery"
	ContractGame       = "game"
	ContractGovernance = "governance"
)

// ContractNames lists every symbolic name accepted by SetContractAddress
var ContractNames = []string{
	ContractStaking,
	ContractNFT,
	ContractLottery,
	ContractGame,
	ContractGovernance,
}

// IsValidContractName reports whether name is a known downstream contract
func IsValidContractName(name string) bool {
	for _, n := range ContractNames {
		if n == name {
			return true
		}
	}
	return false
}

// GetPaymentKey returns the store key for a pending payment
func GetPaymentKey(txID string) []byte {
	return append(PaymentKeyPrefix, []byte(txID)...)
}

// GetPaymentSequenceKey returns the creation-order index key for a payment
func GetPaymentSequenceKey(sequence uint64) []byte {
	return append(PaymentSequenceKeyPrefix, sdk.Uint64ToBigEndian(sequence)...)
}

// GetContractAddressKey returns the store key for a downstream contract address
func GetContractAddressKey(name string) []byte {
	return append(ContractAddressKeyPrefix, []byte(name)...)
}

// GetAuditLogKey returns the store key for an audit log
func GetAuditLogKey(id uint64) []byte {
	return append(AuditLogKeyPrefix, sdk.Uint64ToBigEndian(id)...)
}

// GetAuditLogByTxPrefix returns the index prefix for all audit logs of a tx id.
// The tx id is length prefixed so no id is a key prefix of another.
func GetAuditLogByTxPrefix(txID string) []byte {
	return append(append([]byte{}, AuditLogByTxKeyPrefix...), address.MustLengthPrefix([]byte(txID))...)
}

// GetAuditLogByTxKey returns the tx index key for an audit log
func GetAuditLogByTxKey(txID string, id uint64) []byte {
	return append(GetAuditLogByTxPrefix(txID), sdk.Uint64ToBigEndian(id)...)
}

// GetAuditLogByTypePrefix returns the length prefixed index prefix for an
// event type
func GetAuditLogByTypePrefix(eventType string) []byte {
	return append(append([]byte{}, AuditLogByTypeKeyPrefix...), address.MustLengthPrefix([]byte(eventType))...)
}

// GetAuditLogByTypeKey returns the type index key for an audit log
func GetAuditLogByTypeKey(eventType string, id uint64) []byte {
	return append(GetAuditLogByTypePrefix(eventType), sdk.Uint64ToBigEndian(id)...)
}

// GetAuditLogTimeRangePrefix returns the time index prefix for a timestamp
func GetAuditLogTimeRangePrefix(timestamp int64) []byte {
	return append(AuditLogByTimeKeyPrefix, sdk.Uint64ToBigEndian(uint64(timestamp))...)
}

// GetAuditLogByTimeKey returns the time index key for an audit log
func GetAuditLogByTimeKey(timestamp int64, id uint64) []byte {
	return append(GetAuditLogTimeRangePrefix(timestamp), sdk.Uint64ToBigEndian(id)...)
}
