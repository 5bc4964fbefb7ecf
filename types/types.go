package types

import (
	"fmt"
	"sort"
	"strings"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PaymentStatus is the lifecycle state of a pending payment
type PaymentStatus uint8

const (
	PaymentStatusPending PaymentStatus = iota
	PaymentStatusConfirmed
	PaymentStatusRejected
	PaymentStatusExpired
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentStatusPending:   "pending",
	PaymentStatusConfirmed: "confirmed",
	PaymentStatusRejected:  "rejected",
	PaymentStatusExpired:   "expired",
}

func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// IsTerminal reports whether no further transition is possible
func (s PaymentStatus) IsTerminal() bool {
	return s != PaymentStatusPending
}

func (s PaymentStatus) MarshalText() ([]byte, error) {
	if _, ok := paymentStatusNames[s]; !ok {
		return nil, fmt.Errorf("unknown payment status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *PaymentStatus) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParsePaymentStatus parses the textual form of a payment status
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if name == strings.ToLower(strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown payment status %q", s)
}

// DispatchStatus tracks the downstream effect of a confirmed payment
type DispatchStatus uint8

const (
	DispatchStatusNone DispatchStatus = iota
	DispatchStatusDispatched
	DispatchStatusFailed
)

var dispatchStatusNames = map[DispatchStatus]string{
	DispatchStatusNone:       "none",
	DispatchStatusDispatched: "dispatched",
	DispatchStatusFailed:     "failed",
}

func (s DispatchStatus) String() string {
	if name, ok := dispatchStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

func (s DispatchStatus) MarshalText() ([]byte, error) {
	if _, ok := dispatchStatusNames[s]; !ok {
		return nil, fmt.Errorf("unknown dispatch status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *DispatchStatus) UnmarshalText(text []byte) error {
	for status, name := range dispatchStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown dispatch status %q", string(text))
}

// PendingPayment is the attestation record kept for one external transaction
type PendingPayment struct {
	TxID            string         `json:"tx_id"`
	SenderReference string         `json:"sender_reference"`
	Amount          math.Int       `json:"amount"`
	Beneficiary     string         `json:"beneficiary"`
	Action          Action         `json:"action"`
	Confirmations   []string       `json:"confirmations"`
	CreatedAt       int64          `json:"created_at"`
	Status          PaymentStatus  `json:"status"`
	Digest          hexutil.Bytes  `json:"digest"`
	Sequence        uint64         `json:"sequence"`
	ResolvedAt      int64          `json:"resolved_at"`
	DispatchStatus  DispatchStatus `json:"dispatch_status"`
	DispatchError   string         `json:"dispatch_error,omitempty"`
}

// HasConfirmed reports whether the oracle already attested to this record
func (p PendingPayment) HasConfirmed(oracle string) bool {
	for _, c := range p.Confirmations {
		if c == oracle {
			return true
		}
	}
	return false
}

// IsExpired reports whether a still-pending record outlived the timeout at now.
// It is a read-only helper; the stored status only changes on submission.
func (p PendingPayment) IsExpired(now int64, timeout uint64) bool {
	if p.Status != PaymentStatusPending || now <= p.CreatedAt {
		return false
	}
	return uint64(now-p.CreatedAt) > timeout
}

func (p PendingPayment) String() string {
	return fmt.Sprintf("PendingPayment{TxID: %s, Status: %s, Confirmations: %d}", p.TxID, p.Status, len(p.Confirmations))
}

// MaxTxIDLength bounds external tx ids. Downstream stores key credits by a
// one-byte length prefixed tx id.
const MaxTxIDLength = 255

// Confirmation is a single oracle attestation about an external transfer
type Confirmation struct {
	Oracle          string   `json:"oracle"`
	TxID            string   `json:"tx_id"`
	SenderReference string   `json:"sender_reference"`
	Amount          math.Int `json:"amount"`
	Beneficiary     string   `json:"beneficiary"`
	Action          Action   `json:"action"`
}

// Validate checks the attested fields without touching any state
func (c Confirmation) Validate() error {
	if strings.TrimSpace(c.TxID) == "" {
		return fmt.Errorf("tx id cannot be empty")
	}
	if len(c.TxID) > MaxTxIDLength {
		return fmt.Errorf("tx id is %d bytes, at most %d allowed", len(c.TxID), MaxTxIDLength)
	}
	if c.Amount.IsNil() || !c.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if err := ValidateAddress(c.Beneficiary); err != nil {
		return fmt.Errorf("invalid beneficiary: %w", err)
	}
	if err := c.Action.Validate(); err != nil {
		return fmt.Errorf("invalid action: %w", err)
	}
	return nil
}

// Digest returns the attestation digest two oracles must agree on
func (c Confirmation) Digest() ([]byte, error) {
	return AttestationDigest(c.TxID, c.SenderReference, c.Amount, c.Beneficiary, c.Action)
}

// OracleSet is the versioned registry configuration owned by the oracle module
type OracleSet struct {
	Oracles               []string `json:"oracles"`
	RequiredConfirmations uint32   `json:"required_confirmations"`
	IsActive              bool     `json:"is_active"`
	Owner                 string   `json:"owner"`
	Version               uint64   `json:"version"`
}

// Contains reports whether account is a registered oracle
func (s OracleSet) Contains(account string) bool {
	i := sort.SearchStrings(s.Oracles, account)
	return i < len(s.Oracles) && s.Oracles[i] == account
}

// WithOracle returns a copy of the set with account inserted in order
func (s OracleSet) WithOracle(account string) OracleSet {
	oracles := make([]string, 0, len(s.Oracles)+1)
	oracles = append(oracles, s.Oracles...)
	oracles = append(oracles, account)
	sort.Strings(oracles)
	s.Oracles = oracles
	return s
}

// WithoutOracle returns a copy of the set with account removed
func (s OracleSet) WithoutOracle(account string) OracleSet {
	oracles := make([]string, 0, len(s.Oracles))
	for _, o := range s.Oracles {
		if o != account {
			oracles = append(oracles, o)
		}
	}
	s.Oracles = oracles
	return s
}

// Validate checks every registry invariant against the given oracle cap
func (s OracleSet) Validate(maxOracles uint32) error {
	if err := ValidateAddress(s.Owner); err != nil {
		return fmt.Errorf("invalid owner: %w", err)
	}
	if uint32(len(s.Oracles)) > maxOracles {
		return fmt.Errorf("oracle count %d exceeds maximum %d", len(s.Oracles), maxOracles)
	}
	for i, o := range s.Oracles {
		if err := ValidateAddress(o); err != nil {
			return fmt.Errorf("oracle %d: %w", i, err)
		}
		if i > 0 && s.Oracles[i-1] >= o {
			return fmt.Errorf("oracles must be sorted and unique")
		}
	}
	// an empty registry is only valid before the first oracle is added
	if len(s.Oracles) == 0 {
		if s.RequiredConfirmations != 0 {
			return fmt.Errorf("required confirmations must be 0 for an empty oracle set")
		}
		return nil
	}
	if s.RequiredConfirmations == 0 {
		return fmt.Errorf("required confirmations must be positive")
	}
	if s.RequiredConfirmations > uint32(len(s.Oracles)) {
		return fmt.Errorf("required confirmations %d exceeds oracle count %d", s.RequiredConfirmations, len(s.Oracles))
	}
	return nil
}

func (s OracleSet) String() string {
	return fmt.Sprintf("OracleSet{Oracles: %d, Required: %d, Active: %v, Version: %d}", len(s.Oracles), s.RequiredConfirmations, s.IsActive, s.Version)
}

// ContractAddress binds a symbolic downstream name to an on-chain address
type ContractAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Attribute is a single key/value detail of an audit entry
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID          uint64      `json:"id"`
	EventType   string      `json:"event_type"`
	TxID        string      `json:"tx_id"`
	Details     []Attribute `json:"details"`
	Timestamp   int64       `json:"timestamp"`
	BlockHeight int64       `json:"block_height"`
}

// Validate checks the fields the audit indexes are keyed by
func (l AuditLog) Validate() error {
	if l.EventType == "" || len(l.EventType) > 255 {
		return fmt.Errorf("event type must be 1-255 bytes")
	}
	if len(l.TxID) > MaxTxIDLength {
		return fmt.Errorf("tx id is %d bytes, at most %d allowed", len(l.TxID), MaxTxIDLength)
	}
	return nil
}

// Detail returns the value stored under key, if any
func (l AuditLog) Detail(key string) (string, bool) {
	for _, attr := range l.Details {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (l AuditLog) String() string {
	return fmt.Sprintf("AuditLog{ID: %d, EventType: %s}", l.ID, l.EventType)
}

// EventType constants for audit logging
const (
	AuditPaymentConfirmed  = "payment_confirmed"
	AuditPaymentRejected   = "payment_rejected"
	AuditPaymentExpired    = "payment_expired"
	AuditActionDispatched  = "action_dispatched"
	AuditDispatchFailed    = "dispatch_failed"
	AuditCreditIssued      = "credit_issued"
	AuditCreditBurned      = "credit_burned"
	AuditCreditTransferred = "credit_transferred"
	AuditMintCommandSigned = "mint_command_signed"
	AuditOracleAdded       = "oracle_added"
	AuditOracleRemoved     = "oracle_removed"
)

// Credit is a downstream ledger entry created by a dispatched payment
type Credit struct {
	Denom    string   `json:"denom"`
	Holder   string   `json:"holder"`
	Amount   math.Int `json:"amount"`
	OriginTx string   `json:"origin_tx"`
	Contract string   `json:"contract"`
	IssuedAt int64    `json:"issued_at"`
}

func (c Credit) String() string {
	return fmt.Sprintf("Credit{Denom: %s, Holder: %s, Amount: %s}", c.Denom, c.Holder, c.Amount.String())
}

// CommandStatus represents the status of a mint command
type CommandStatus uint8

const (
	CommandStatusPending CommandStatus = iota
	CommandStatusSigned
	CommandStatusExecuted
)

var commandStatusNames = map[CommandStatus]string{
	CommandStatusPending:  "pending",
	CommandStatusSigned:   "signed",
	CommandStatusExecuted: "executed",
}

func (s CommandStatus) String() string {
	if name, ok := commandStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

func (s CommandStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CommandStatus) UnmarshalText(text []byte) error {
	for status, name := range commandStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown command status %q", string(text))
}

// CommandSignature is one oracle's secp256k1 signature over a mint command
type CommandSignature struct {
	Signer    string        `json:"signer"`
	Signature hexutil.Bytes `json:"signature"`
	Timestamp int64         `json:"timestamp"`
}

// MintCommand authorises an NFT mint once enough oracles have signed it
type MintCommand struct {
	CommandID  string             `json:"command_id"`
	Contract   string             `json:"contract"`
	Recipient  string             `json:"recipient"`
	Tier       uint32             `json:"tier"`
	OriginTx   string             `json:"origin_tx"`
	Signatures []CommandSignature `json:"signatures"`
	CreatedAt  int64              `json:"created_at"`
	Status     CommandStatus      `json:"status"`
}

// HasSigned reports whether signer already signed the command
func (mc MintCommand) HasSigned(signer string) bool {
	for _, sig := range mc.Signatures {
		if sig.Signer == signer {
			return true
		}
	}
	return false
}

func (mc MintCommand) String() string {
	return fmt.Sprintf("MintCommand{CommandID: %s, Recipient: %s, Tier: %d}", mc.CommandID, mc.Recipient, mc.Tier)
}
