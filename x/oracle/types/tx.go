package types

import "context"

// MsgSubmitConfirmationResponse defines the response for MsgSubmitConfirmation.
// Code and Error are set when the submission failed but its terminal
// transition (expiry, rejection, best-effort dispatch failure) was committed.
type MsgSubmitConfirmationResponse struct {
	ConsensusReached bool   `json:"consensus_reached"`
	Status           string `json:"status"`
	Confirmations    uint32 `json:"confirmations"`
	Code             uint32 `json:"code,omitempty"`
	Error            string `json:"error,omitempty"`
}

// MsgAddOracleResponse defines the response for MsgAddOracle
type MsgAddOracleResponse struct {
	Version uint64 `json:"version"`
}

// MsgRemoveOracleResponse defines the response for MsgRemoveOracle
type MsgRemoveOracleResponse struct {
	Version uint64 `json:"version"`
}

// MsgSetRequiredConfirmationsResponse defines the response for MsgSetRequiredConfirmations
type MsgSetRequiredConfirmationsResponse struct {
	Version uint64 `json:"version"`
}

// MsgSetActiveStatusResponse defines the response for MsgSetActiveStatus
type MsgSetActiveStatusResponse struct {
	Version uint64 `json:"version"`
}

// MsgSetContractAddressResponse defines the response for MsgSetContractAddress
type MsgSetContractAddressResponse struct{}

// MsgUpdateParamsResponse defines the response for MsgUpdateParams
type MsgUpdateParamsResponse struct{}

// MsgRetryDispatchResponse defines the response for MsgRetryDispatch
type MsgRetryDispatchResponse struct {
	DispatchStatus string `json:"dispatch_status"`
}

// MsgTransferOwnershipResponse defines the response for MsgTransferOwnership
type MsgTransferOwnershipResponse struct {
	Version uint64 `json:"version"`
}

// MsgServer defines the msg service for the oracle module
type MsgServer interface {
	SubmitConfirmation(ctx context.Context, msg *MsgSubmitConfirmation) (*MsgSubmitConfirmationResponse, error)
	AddOracle(ctx context.Context, msg *MsgAddOracle) (*MsgAddOracleResponse, error)
	RemoveOracle(ctx context.Context, msg *MsgRemoveOracle) (*MsgRemoveOracleResponse, error)
	SetRequiredConfirmations(ctx context.Context, msg *MsgSetRequiredConfirmations) (*MsgSetRequiredConfirmationsResponse, error)
	SetActiveStatus(ctx context.Context, msg *MsgSetActiveStatus) (*MsgSetActiveStatusResponse, error)
	SetContractAddress(ctx context.Context, msg *MsgSetContractAddress) (*MsgSetContractAddressResponse, error)
	UpdateParams(ctx context.Context, msg *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
	RetryDispatch(ctx context.Context, msg *MsgRetryDispatch) (*MsgRetryDispatchResponse, error)
	TransferOwnership(ctx context.Context, msg *MsgTransferOwnership) (*MsgTransferOwnershipResponse, error)
}
