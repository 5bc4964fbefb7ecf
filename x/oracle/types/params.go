package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

const (
	// DefaultConfirmationTimeout is the lifetime of a pending payment in seconds
	DefaultConfirmationTimeout uint64 = 3600

	// DefaultMaxOracles is the default registry cap
	DefaultMaxOracles uint32 = 10

	// MaxOraclesHardCap bounds MaxOracles itself
	MaxOraclesHardCap uint32 = 10
)

// Params defines the parameters for the oracle module.
type Params struct {
	ConfirmationTimeout uint64 `json:"confirmation_timeout"` // seconds
	MaxOracles          uint32 `json:"max_oracles"`
	MaxStoredPayments   uint64 `json:"max_stored_payments"` // 0 means unbounded
	AtomicDispatch      bool   `json:"atomic_dispatch"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		ConfirmationTimeout: DefaultConfirmationTimeout,
		MaxOracles:          DefaultMaxOracles,
		MaxStoredPayments:   0,
		AtomicDispatch:      true,
	}
}

// Validate checks the parameter ranges
func (p Params) Validate() error {
	if p.ConfirmationTimeout == 0 {
		return fmt.Errorf("confirmation timeout must be positive")
	}
	if p.MaxOracles == 0 || p.MaxOracles > MaxOraclesHardCap {
		return fmt.Errorf("max oracles must be between 1 and %d: %d", MaxOraclesHardCap, p.MaxOracles)
	}
	return nil
}

// Marshal encodes the params for the store
func (p Params) Marshal() ([]byte, error) {
	return rlp.EncodeToBytes(&p)
}

// Unmarshal decodes params previously written by Marshal
func (p *Params) Unmarshal(data []byte) error {
	return rlp.DecodeBytes(data, p)
}
