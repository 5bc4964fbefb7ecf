package types

import (
	"cosmossdk.io/errors"
)

// x/oracle module sentinel errors
var (
	ErrUnauthorized            = errors.Register(ModuleName, 2, "caller is not the owner")
	ErrUnauthorizedOracle      = errors.Register(ModuleName, 3, "caller is not a registered oracle")
	ErrSystemInactive          = errors.Register(ModuleName, 4, "oracle system is inactive")
	ErrAlreadyConfirmed        = errors.Register(ModuleName, 5, "oracle already confirmed this payment")
	ErrPaymentAlreadyProcessed = errors.Register(ModuleName, 6, "payment already processed")
	ErrPaymentExpired          = errors.Register(ModuleName, 7, "payment expired")
	ErrPaymentDataMismatch     = errors.Register(ModuleName, 8, "payment data mismatch")
	ErrInvalidConfiguration    = errors.Register(ModuleName, 9, "invalid configuration")
	ErrMaxOraclesReached       = errors.Register(ModuleName, 10, "maximum number of oracles reached")
	ErrOracleAlreadyExists     = errors.Register(ModuleName, 11, "oracle already exists")
	ErrMinimumOraclesRequired  = errors.Register(ModuleName, 12, "removal would leave fewer oracles than required confirmations")
	ErrCrossContractCallFailed = errors.Register(ModuleName, 13, "downstream call failed")
	ErrContractNotConfigured   = errors.Register(ModuleName, 14, "downstream contract not configured")
	ErrPaymentNotFound         = errors.Register(ModuleName, 15, "payment not found")
	ErrInvalidPaymentData      = errors.Register(ModuleName, 16, "invalid payment data")
	ErrStoreCapacityReached    = errors.Register(ModuleName, 17, "payment store capacity reached")
	ErrOracleNotFound          = errors.Register(ModuleName, 18, "oracle not found")
	ErrDispatchNotRetryable    = errors.Register(ModuleName, 19, "dispatch is not retryable")
	ErrInvalidAuditLog         = errors.Register(ModuleName, 20, "invalid audit log")
)

// IsAuthorizationError reports failures the caller can recover from once
// authorized or once the system is reactivated.
func IsAuthorizationError(err error) bool {
	return errors.IsOf(err, ErrUnauthorized, ErrUnauthorizedOracle, ErrSystemInactive)
}

// IsStateConflictError reports failures that are terminal for a tx id.
func IsStateConflictError(err error) bool {
	return errors.IsOf(err, ErrAlreadyConfirmed, ErrPaymentAlreadyProcessed, ErrPaymentExpired, ErrPaymentDataMismatch)
}

// IsConfigurationError reports admin-facing failures.
func IsConfigurationError(err error) bool {
	return errors.IsOf(err, ErrInvalidConfiguration, ErrMaxOraclesReached, ErrOracleAlreadyExists, ErrMinimumOraclesRequired, ErrOracleNotFound)
}

// IsDownstreamError reports dispatch failures.
func IsDownstreamError(err error) bool {
	return errors.IsOf(err, ErrCrossContractCallFailed, ErrContractNotConfigured)
}
