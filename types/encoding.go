package types

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/rlp"
)

// Store values are RLP encoded. RLP has no signed integers, so every record
// goes through a storage mirror that carries timestamps as uint64 and amounts
// as *big.Int.

type actionRLP struct {
	Kind     uint8
	Amount   *big.Int
	Pool     string
	Tier     uint32
	Quantity uint32
	Spins    uint32
	Hook     string
}

func newActionRLP(a Action) actionRLP {
	return actionRLP{
		Kind:     uint8(a.Kind),
		Amount:   intOrZero(a.Amount).BigInt(),
		Pool:     a.Pool,
		Tier:     a.Tier,
		Quantity: a.Quantity,
		Spins:    a.Spins,
		Hook:     a.Hook,
	}
}

func (r actionRLP) action() Action {
	return Action{
		Kind:     ActionKind(r.Kind),
		Amount:   bigToInt(r.Amount),
		Pool:     r.Pool,
		Tier:     r.Tier,
		Quantity: r.Quantity,
		Spins:    r.Spins,
		Hook:     r.Hook,
	}
}

type attestationRLP struct {
	TxID            string
	SenderReference string
	Amount          *big.Int
	Beneficiary     string
	Action          actionRLP
}

type paymentRLP struct {
	TxID            string
	SenderReference string
	Amount          *big.Int
	Beneficiary     string
	Action          actionRLP
	Confirmations   []string
	CreatedAt       uint64
	Status          uint8
	Digest          []byte
	Sequence        uint64
	ResolvedAt      uint64
	DispatchStatus  uint8
	DispatchError   string
}

// Marshal encodes the payment for the store
func (p PendingPayment) Marshal() ([]byte, error) {
	return rlp.EncodeToBytes(&paymentRLP{
		TxID:            p.TxID,
		SenderReference: p.SenderReference,
		Amount:          intOrZero(p.Amount).BigInt(),
		Beneficiary:     p.Beneficiary,
		Action:          newActionRLP(p.Action),
		Confirmations:   p.Confirmations,
		CreatedAt:       uint64(p.CreatedAt),
		Status:          uint8(p.Status),
		Digest:          p.Digest,
		Sequence:        p.Sequence,
		ResolvedAt:      uint64(p.ResolvedAt),
		DispatchStatus:  uint8(p.DispatchStatus),
		DispatchError:   p.DispatchError,
	})
}

// Unmarshal decodes a payment previously written by Marshal
func (p *PendingPayment) Unmarshal(data []byte) error {
	var r paymentRLP
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return err
	}
	*p = PendingPayment{
		TxID:            r.TxID,
		SenderReference: r.SenderReference,
		Amount:          bigToInt(r.Amount),
		Beneficiary:     r.Beneficiary,
		Action:          r.Action.action(),
		Confirmations:   r.Confirmations,
		CreatedAt:       int64(r.CreatedAt),
		Status:          PaymentStatus(r.Status),
		Digest:          r.Digest,
		Sequence:        r.Sequence,
		ResolvedAt:      int64(r.ResolvedAt),
		DispatchStatus:  DispatchStatus(r.DispatchStatus),
		DispatchError:   r.DispatchError,
	}
	return nil
}

// Marshal encodes the oracle set for the store
func (s OracleSet) Marshal() ([]byte, error) {
	return rlp.EncodeToBytes(&s)
}

// Unmarshal decodes an oracle set previously written by Marshal
func (s *OracleSet) Unmarshal(data []byte) error {
	return rlp.DecodeBytes(data, s)
}

type auditLogRLP struct {
	ID          uint64
	EventType   string
	TxID        string
	Details     []Attribute
	Timestamp   uint64
	BlockHeight uint64
}

// Marshal encodes the audit entry for the store
func (l AuditLog) Marshal() ([]byte, error) {
	return rlp.EncodeToBytes(&auditLogRLP{
		ID:          l.ID,
		EventType:   l.EventType,
		TxID:        l.TxID,
		Details:     l.Details,
		Timestamp:   uint64(l.Timestamp),
		BlockHeight: uint64(l.BlockHeight),
	})
}

// Unmarshal decodes an audit entry previously written by Marshal
func (l *AuditLog) Unmarshal(data []byte) error {
	var r auditLogRLP
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return err
	}
	*l = AuditLog{
		ID:          r.ID,
		EventType:   r.EventType,
		TxID:        r.TxID,
		Details:     r.Details,
		Timestamp:   int64(r.Timestamp),
		BlockHeight: int64(r.BlockHeight),
	}
	return nil
}

type creditRLP struct {
	Denom    string
	Holder   string
	Amount   *big.Int
	OriginTx string
	Contract string
	IssuedAt uint64
}

// Marshal encodes the credit for the store
func (c Credit) Marshal() ([]byte, error) {
	return rlp.EncodeToBytes(&creditRLP{
		Denom:    c.Denom,
		Holder:   c.Holder,
		Amount:   intOrZero(c.Amount).BigInt(),
		OriginTx: c.OriginTx,
		Contract: c.Contract,
		IssuedAt: uint64(c.IssuedAt),
	})
}

// Unmarshal decodes a credit previously written by Marshal
func (c *Credit) Unmarshal(data []byte) error {
	var r creditRLP
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return err
	}
	*c = Credit{
		Denom:    r.Denom,
		Holder:   r.Holder,
		Amount:   bigToInt(r.Amount),
		OriginTx: r.OriginTx,
		Contract: r.Contract,
		IssuedAt: int64(r.IssuedAt),
	}
	return nil
}

type commandSignatureRLP struct {
	Signer    string
	Signature []byte
	Timestamp uint64
}

type mintCommandRLP struct {
	CommandID  string
	Contract   string
	Recipient  string
	Tier       uint32
	OriginTx   string
	Signatures []commandSignatureRLP
	CreatedAt  uint64
	Status     uint8
}

// Marshal encodes the mint command for the store
func (mc MintCommand) Marshal() ([]byte, error) {
	sigs := make([]commandSignatureRLP, len(mc.Signatures))
	for i, sig := range mc.Signatures {
		sigs[i] = commandSignatureRLP{
			Signer:    sig.Signer,
			Signature: sig.Signature,
			Timestamp: uint64(sig.Timestamp),
		}
	}
	return rlp.EncodeToBytes(&mintCommandRLP{
		CommandID:  mc.CommandID,
		Contract:   mc.Contract,
		Recipient:  mc.Recipient,
		Tier:       mc.Tier,
		OriginTx:   mc.OriginTx,
		Signatures: sigs,
		CreatedAt:  uint64(mc.CreatedAt),
		Status:     uint8(mc.Status),
	})
}

// Unmarshal decodes a mint command previously written by Marshal
func (mc *MintCommand) Unmarshal(data []byte) error {
	var r mintCommandRLP
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return err
	}
	sigs := make([]CommandSignature, len(r.Signatures))
	for i, sig := range r.Signatures {
		sigs[i] = CommandSignature{
			Signer:    sig.Signer,
			Signature: sig.Signature,
			Timestamp: int64(sig.Timestamp),
		}
	}
	*mc = MintCommand{
		CommandID:  r.CommandID,
		Contract:   r.Contract,
		Recipient:  r.Recipient,
		Tier:       r.Tier,
		OriginTx:   r.OriginTx,
		Signatures: sigs,
		CreatedAt:  int64(r.CreatedAt),
		Status:     CommandStatus(r.Status),
	}
	return nil
}

func bigToInt(b *big.Int) math.Int {
	if b == nil {
		return math.ZeroInt()
	}
	return math.NewIntFromBigInt(b)
}
