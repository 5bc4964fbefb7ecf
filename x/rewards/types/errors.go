package types

import (
	"cosmossdk.io/errors"
)

// x/rewards module sentinel errors
var (
	ErrInvalidCredit       = errors.Register(ModuleName, 2, "invalid credit")
	ErrInsufficientBalance = errors.Register(ModuleName, 3, "insufficient credit balance")
	ErrCreditNotFound      = errors.Register(ModuleName, 4, "credit not found")
	ErrDuplicateCredit     = errors.Register(ModuleName, 5, "credit already issued for origin tx")
	ErrInvalidAmount       = errors.Register(ModuleName, 6, "invalid amount")
	ErrInvalidDenom        = errors.Register(ModuleName, 7, "invalid denom")
)
