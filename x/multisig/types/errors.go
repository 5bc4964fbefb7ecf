package types

import (
	"cosmossdk.io/errors"
)

// x/multisig module sentinel errors
var (
	ErrInvalidCommand       = errors.Register(ModuleName, 2, "invalid mint command")
	ErrCommandNotFound      = errors.Register(ModuleName, 3, "command not found")
	ErrDuplicateCommand     = errors.Register(ModuleName, 4, "mint command already generated for origin tx")
	ErrUnauthorizedSigner   = errors.Register(ModuleName, 5, "signer is not a registered oracle")
	ErrInvalidSignature     = errors.Register(ModuleName, 6, "invalid signature")
	ErrDuplicateSignature   = errors.Register(ModuleName, 7, "duplicate signature")
	ErrInvalidCommandStatus = errors.Register(ModuleName, 8, "invalid command status")
)
