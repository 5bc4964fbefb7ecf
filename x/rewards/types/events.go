package types

// Rewards module event types
const (
	EventTypeCreditIssued      = "credit_issued"
	EventTypeCreditBurned      = "credit_burned"
	EventTypeCreditTransferred = "credit_transferred"
)

// Rewards module event attribute keys
const (
	AttributeKeyDenom    = "denom"
	AttributeKeyAmount   = "amount"
	AttributeKeyHolder   = "holder"
	AttributeKeyFrom     = "from"
	AttributeKeyTo       = "to"
	AttributeKeyOriginTx = "origin_tx"
	AttributeKeyContract = "contract"
)
