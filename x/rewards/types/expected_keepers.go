package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
)

// OracleKeeper defines the expected oracle keeper used for audit logging
type OracleKeeper interface {
	SaveAuditLog(ctx sdk.Context, log commontypes.AuditLog) (uint64, error)
}
