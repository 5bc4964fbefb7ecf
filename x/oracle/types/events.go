package types

// Oracle module event types
const (
	EventTypeConfirmationSubmitted = "confirmation_submitted"
	EventTypeConsensusReached      = "consensus_reached"
	EventTypePaymentRejected       = "payment_rejected"
	EventTypePaymentExpired        = "payment_expired"
	EventTypePaymentPruned         = "payment_pruned"
	EventTypeActionDispatched      = "action_dispatched"
	EventTypeDispatchFailed        = "dispatch_failed"
	EventTypeCustomAction          = "custom_action"
	EventTypeOracleAdded           = "oracle_added"
	EventTypeOracleRemoved         = "oracle_removed"
	EventTypeThresholdUpdated      = "threshold_updated"
	EventTypeActiveStatusUpdated   = "active_status_updated"
	EventTypeContractAddressSet    = "contract_address_updated"
	EventTypeParamsUpdated         = "params_updated"
	EventTypeOwnershipTransferred  = "ownership_transferred"
)

// Oracle module event attribute keys
const (
	AttributeKeyTxID          = "tx_id"
	AttributeKeyOracle        = "oracle"
	AttributeKeyBeneficiary   = "beneficiary"
	AttributeKeyAmount        = "amount"
	AttributeKeyAction        = "action"
	AttributeKeyConfirmations = "confirmations"
	AttributeKeyRequired      = "required_confirmations"
	AttributeKeyStatus        = "status"
	AttributeKeyReason        = "reason"
	AttributeKeyContract      = "contract"
	AttributeKeyAddress       = "address"
	AttributeKeyHook          = "hook"
	AttributeKeyActive        = "active"
	AttributeKeyOwner         = "owner"
	AttributeKeyPreviousOwner = "previous_owner"
	AttributeKeyVersion       = "version"
	AttributeKeySequence      = "sequence"
)
