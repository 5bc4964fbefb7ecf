package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// StakeDenomPrefix prefixes the credit denom of every stake pool
const StakeDenomPrefix = "stake"

// StakeDenom returns the credit denom stake of a pool is tracked under
func StakeDenom(pool string) string {
	return StakeDenomPrefix + "/" + pool
}

// ActionKind selects the downstream effect of a confirmed payment
type ActionKind uint8

const (
	ActionKindUnspecified ActionKind = iota
	ActionKindStakeCredit
	ActionKindNFTPurchase
	ActionKindLotteryTicket
	ActionKindGameCredit
	ActionKindGovernanceDeposit
	ActionKindCustom
)

var actionKindNames = map[ActionKind]string{
	ActionKindStakeCredit:       "stake_credit",
	ActionKindNFTPurchase:       "nft_purchase",
	ActionKindLotteryTicket:     "lottery_ticket",
	ActionKindGameCredit:        "game_credit",
	ActionKindGovernanceDeposit: "governance_deposit",
	ActionKindCustom:            "custom",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

func (k ActionKind) MarshalText() ([]byte, error) {
	if _, ok := actionKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown action kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *ActionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseActionKind parses the snake_case name of an action kind
func ParseActionKind(s string) (ActionKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for kind, name := range actionKindNames {
		if name == normalized {
			return kind, nil
		}
	}
	return ActionKindUnspecified, fmt.Errorf("unknown action kind %q", s)
}

// Action is a closed set of downstream effects. Only the fields belonging to
// Kind may be set; all others must stay at their zero value.
type Action struct {
	Kind     ActionKind `json:"kind"`
	Amount   math.Int   `json:"amount"`
	Pool     string     `json:"pool,omitempty"`
	Tier     uint32     `json:"tier,omitempty"`
	Quantity uint32     `json:"quantity,omitempty"`
	Spins    uint32     `json:"spins,omitempty"`
	Hook     string     `json:"hook,omitempty"`
}

// NewStakeCreditAction credits amount to a staking pool
func NewStakeCreditAction(amount math.Int, pool string) Action {
	return Action{Kind: ActionKindStakeCredit, Amount: amount, Pool: pool}
}

// NewNFTPurchaseAction requests a mint of the given tier
func NewNFTPurchaseAction(tier uint32) Action {
	return Action{Kind: ActionKindNFTPurchase, Amount: math.ZeroInt(), Tier: tier}
}

// NewLotteryTicketAction buys quantity tickets
func NewLotteryTicketAction(quantity uint32) Action {
	return Action{Kind: ActionKindLotteryTicket, Amount: math.ZeroInt(), Quantity: quantity}
}

// NewGameCreditAction credits spins at a game tier
func NewGameCreditAction(tier, spins uint32) Action {
	return Action{Kind: ActionKindGameCredit, Amount: math.ZeroInt(), Tier: tier, Spins: spins}
}

// NewGovernanceDepositAction deposits the payment amount into governance
func NewGovernanceDepositAction() Action {
	return Action{Kind: ActionKindGovernanceDeposit, Amount: math.ZeroInt()}
}

// NewCustomAction only emits an event carrying hook
func NewCustomAction(hook string) Action {
	return Action{Kind: ActionKindCustom, Amount: math.ZeroInt(), Hook: hook}
}

// Validate enforces the per-kind payload shape
func (a Action) Validate() error {
	amountSet := !a.Amount.IsNil() && !a.Amount.IsZero()

	switch a.Kind {
	case ActionKindStakeCredit:
		if a.Amount.IsNil() || !a.Amount.IsPositive() {
			return fmt.Errorf("stake credit amount must be positive")
		}
		if strings.TrimSpace(a.Pool) == "" {
			return fmt.Errorf("stake credit pool cannot be empty")
		}
		if err := sdk.ValidateDenom(StakeDenom(a.Pool)); err != nil {
			return fmt.Errorf("stake credit pool %q: %w", a.Pool, err)
		}
		return a.requireUnset(false, false, true, true, true, true)
	case ActionKindNFTPurchase:
		if a.Tier == 0 {
			return fmt.Errorf("nft tier must be positive")
		}
		return a.requireUnset(amountSet, true, false, true, true, true)
	case ActionKindLotteryTicket:
		if a.Quantity == 0 {
			return fmt.Errorf("ticket quantity must be positive")
		}
		return a.requireUnset(amountSet, true, true, false, true, true)
	case ActionKindGameCredit:
		if a.Tier == 0 || a.Spins == 0 {
			return fmt.Errorf("game tier and spins must be positive")
		}
		return a.requireUnset(amountSet, true, false, true, false, true)
	case ActionKindGovernanceDeposit:
		return a.requireUnset(amountSet, true, true, true, true, true)
	case ActionKindCustom:
		if strings.TrimSpace(a.Hook) == "" {
			return fmt.Errorf("custom hook cannot be empty")
		}
		return a.requireUnset(amountSet, true, true, true, true, false)
	default:
		return fmt.Errorf("unknown action kind %d", uint8(a.Kind))
	}
}

// requireUnset fails when a field that must be zero for this kind is set.
// The first argument is the already-evaluated amount check.
func (a Action) requireUnset(amountSet, pool, tier, quantity, spins, hook bool) error {
	switch {
	case amountSet:
		return fmt.Errorf("amount not allowed for %s", a.Kind)
	case pool && a.Pool != "":
		return fmt.Errorf("pool not allowed for %s", a.Kind)
	case tier && a.Tier != 0:
		return fmt.Errorf("tier not allowed for %s", a.Kind)
	case quantity && a.Quantity != 0:
		return fmt.Errorf("quantity not allowed for %s", a.Kind)
	case spins && a.Spins != 0:
		return fmt.Errorf("spins not allowed for %s", a.Kind)
	case hook && a.Hook != "":
		return fmt.Errorf("hook not allowed for %s", a.Kind)
	}
	return nil
}

// Equal compares two actions field by field, treating a nil amount as zero
func (a Action) Equal(other Action) bool {
	return a.Kind == other.Kind &&
		intOrZero(a.Amount).Equal(intOrZero(other.Amount)) &&
		a.Pool == other.Pool &&
		a.Tier == other.Tier &&
		a.Quantity == other.Quantity &&
		a.Spins == other.Spins &&
		a.Hook == other.Hook
}

func (a Action) String() string {
	switch a.Kind {
	case ActionKindStakeCredit:
		return fmt.Sprintf("%s(%s -> %s)", a.Kind, intOrZero(a.Amount), a.Pool)
	case ActionKindNFTPurchase:
		return fmt.Sprintf("%s(tier %d)", a.Kind, a.Tier)
	case ActionKindLotteryTicket:
		return fmt.Sprintf("%s(x%d)", a.Kind, a.Quantity)
	case ActionKindGameCredit:
		return fmt.Sprintf("%s(tier %d, %d spins)", a.Kind, a.Tier, a.Spins)
	case ActionKindCustom:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Hook)
	default:
		return a.Kind.String()
	}
}

// AttestationDigest hashes the attested fields of a payment. Two confirmations
// refer to the same payment only when their digests are equal.
func AttestationDigest(txID, senderRef string, amount math.Int, beneficiary string, action Action) ([]byte, error) {
	bz, err := rlp.EncodeToBytes(&attestationRLP{
		TxID:            txID,
		SenderReference: senderRef,
		Amount:          intOrZero(amount).BigInt(),
		Beneficiary:     beneficiary,
		Action:          newActionRLP(action),
	})
	if err != nil {
		return nil, err
	}
	return crypto.Keccak256(bz), nil
}

// ValidateAddress checks that addr is a well formed account address
func ValidateAddress(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return err
	}
	return nil
}

func intOrZero(i math.Int) math.Int {
	if i.IsNil() {
		return math.ZeroInt()
	}
	return i
}
