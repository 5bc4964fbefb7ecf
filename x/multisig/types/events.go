package types

// Multisig module event types
const (
	EventTypeMintCommandGenerated = "mint_command_generated"
	EventTypeCommandSigned        = "command_signed"
	EventTypeThresholdReached     = "threshold_reached"
	EventTypeCommandExecuted      = "command_executed"
)

// Multisig module event attribute keys
const (
	AttributeKeyCommandID      = "command_id"
	AttributeKeyContract       = "contract"
	AttributeKeyRecipient      = "recipient"
	AttributeKeyTier           = "tier"
	AttributeKeyOriginTx       = "origin_tx"
	AttributeKeySigner         = "signer"
	AttributeKeySignatureCount = "signature_count"
	AttributeKeyThreshold      = "threshold"
	AttributeKeyExecutor       = "executor"
)
