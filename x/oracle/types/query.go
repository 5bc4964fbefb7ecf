package types

import (
	"context"

	commontypes "github.com/payment-oracle/cosmos/types"
)

// QueryPendingPaymentRequest asks for a single payment by tx id
type QueryPendingPaymentRequest struct {
	TxID string `json:"tx_id"`
}

// QueryPendingPaymentResponse carries the stored record. Expired is computed
// against the current block time and does not change the stored status.
type QueryPendingPaymentResponse struct {
	Payment commontypes.PendingPayment `json:"payment"`
	Expired bool                       `json:"expired"`
}

// QueryPaymentsRequest lists payments, optionally filtered by status
type QueryPaymentsRequest struct {
	Status string `json:"status,omitempty"`
}

// QueryPaymentsResponse lists payments in creation order
type QueryPaymentsResponse struct {
	Payments []commontypes.PendingPayment `json:"payments"`
}

// QueryOracleSetRequest asks for the registry configuration
type QueryOracleSetRequest struct{}

// QueryOracleSetResponse carries the registry configuration
type QueryOracleSetResponse struct {
	OracleSet commontypes.OracleSet `json:"oracle_set"`
}

// QueryIsOracleRequest asks whether an account is a registered oracle
type QueryIsOracleRequest struct {
	Account string `json:"account"`
}

// QueryIsOracleResponse answers QueryIsOracleRequest
type QueryIsOracleResponse struct {
	IsOracle bool `json:"is_oracle"`
}

// QueryContractAddressesRequest asks for every configured downstream address
type QueryContractAddressesRequest struct{}

// QueryContractAddressesResponse lists configured downstream addresses
type QueryContractAddressesResponse struct {
	Contracts []commontypes.ContractAddress `json:"contracts"`
}

// QueryParamsRequest asks for the module parameters
type QueryParamsRequest struct{}

// QueryParamsResponse carries the module parameters
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryAuditLogsRequest selects audit logs. The first set filter wins, in
// the order ID, TxID, EventType, time range. With no filter every log is
// returned.
type QueryAuditLogsRequest struct {
	ID        uint64 `json:"id,omitempty"`
	TxID      string `json:"tx_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Since     int64  `json:"since,omitempty"`
	Until     int64  `json:"until,omitempty"`
}

// QueryAuditLogsResponse carries the selected logs and the number of logs
// ever written
type QueryAuditLogsResponse struct {
	Logs  []commontypes.AuditLog `json:"logs"`
	Total uint64                 `json:"total"`
}

// QueryServer defines the read-only query service of the oracle module
type QueryServer interface {
	PendingPayment(ctx context.Context, req *QueryPendingPaymentRequest) (*QueryPendingPaymentResponse, error)
	Payments(ctx context.Context, req *QueryPaymentsRequest) (*QueryPaymentsResponse, error)
	OracleSet(ctx context.Context, req *QueryOracleSetRequest) (*QueryOracleSetResponse, error)
	IsOracle(ctx context.Context, req *QueryIsOracleRequest) (*QueryIsOracleResponse, error)
	ContractAddresses(ctx context.Context, req *QueryContractAddressesRequest) (*QueryContractAddressesResponse, error)
	Params(ctx context.Context, req *QueryParamsRequest) (*QueryParamsResponse, error)
	AuditLogs(ctx context.Context, req *QueryAuditLogsRequest) (*QueryAuditLogsResponse, error)
}
