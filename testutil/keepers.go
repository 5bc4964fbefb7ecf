package testutil

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdktestutil "github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/payment-oracle/cosmos/app"
	"github.com/payment-oracle/cosmos/types"
	multisigkeeper "github.com/payment-oracle/cosmos/x/multisig/keeper"
	oraclekeeper "github.com/payment-oracle/cosmos/x/oracle/keeper"
	oracletypes "github.com/payment-oracle/cosmos/x/oracle/types"
	rewardskeeper "github.com/payment-oracle/cosmos/x/rewards/keeper"
)

// GenesisTime is the block time test environments start at
var GenesisTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// DownstreamCall records one call into a mocked downstream keeper
type DownstreamCall struct {
	Method   string
	Contract string
	Account  string
	Pool     string
	Amount   math.Int
	Tier     uint32
	Quantity uint32
	Spins    uint32
	OriginTx string
}

// MockDownstream stands in for every downstream keeper the oracle dispatches
// to. Calls are recorded even when the caller later discards its state.
type MockDownstream struct {
	Calls []DownstreamCall
	Err   error
}

var (
	_ oracletypes.StakingKeeper    = (*MockDownstream)(nil)
	_ oracletypes.NFTKeeper        = (*MockDownstream)(nil)
	_ oracletypes.LotteryKeeper    = (*MockDownstream)(nil)
	_ oracletypes.GameKeeper       = (*MockDownstream)(nil)
	_ oracletypes.GovernanceKeeper = (*MockDownstream)(nil)
)

// NewMockDownstream returns a mock that accepts every call
func NewMockDownstream() *MockDownstream {
	return &MockDownstream{Calls: []DownstreamCall{}}
}

func (m *MockDownstream) record(call DownstreamCall) error {
	m.Calls = append(m.Calls, call)
	return m.Err
}

// CreditStake implements oracletypes.StakingKeeper
func (m *MockDownstream) CreditStake(_ sdk.Context, contract, beneficiary, pool string, amount math.Int, originTx string) error {
	return m.record(DownstreamCall{Method: "CreditStake", Contract: contract, Account: beneficiary, Pool: pool, Amount: amount, OriginTx: originTx})
}

// GenerateMintCommand implements oracletypes.NFTKeeper
func (m *MockDownstream) GenerateMintCommand(ctx sdk.Context, contract, recipient string, tier uint32, originTx string) (types.MintCommand, error) {
	if err := m.record(DownstreamCall{Method: "GenerateMintCommand", Contract: contract, Account: recipient, Tier: tier, OriginTx: originTx}); err != nil {
		return types.MintCommand{}, err
	}
	return types.MintCommand{
		CommandID: "cmd-" + originTx,
		Contract:  contract,
		Recipient: recipient,
		Tier:      tier,
		OriginTx:  originTx,
		CreatedAt: ctx.BlockTime().Unix(),
		Status:    types.CommandStatusPending,
	}, nil
}

// PurchaseTickets implements oracletypes.LotteryKeeper
func (m *MockDownstream) PurchaseTickets(_ sdk.Context, contract, buyer string, quantity uint32, originTx string) error {
	return m.record(DownstreamCall{Method: "PurchaseTickets", Contract: contract, Account: buyer, Quantity: quantity, OriginTx: originTx})
}

// CreditSpins implements oracletypes.GameKeeper
func (m *MockDownstream) CreditSpins(_ sdk.Context, contract, player string, tier, spins uint32, originTx string) error {
	return m.record(DownstreamCall{Method: "CreditSpins", Contract: contract, Account: player, Tier: tier, Spins: spins, OriginTx: originTx})
}

// Deposit implements oracletypes.GovernanceKeeper
func (m *MockDownstream) Deposit(_ sdk.Context, contract, depositor string, amount math.Int, originTx string) error {
	return m.record(DownstreamCall{Method: "Deposit", Contract: contract, Account: depositor, Amount: amount, OriginTx: originTx})
}

// CallsFor returns the recorded calls for an origin tx
func (m *MockDownstream) CallsFor(originTx string) []DownstreamCall {
	calls := make([]DownstreamCall, 0)
	for _, call := range m.Calls {
		if call.OriginTx == originTx {
			calls = append(calls, call)
		}
	}
	return calls
}

// SetupOracleKeeper builds an oracle keeper on an in-memory store with every
// downstream keeper mocked.
func SetupOracleKeeper(t testing.TB) (sdk.Context, *oraclekeeper.Keeper, *MockDownstream) {
	storeKey := storetypes.NewKVStoreKey(oracletypes.StoreKey)
	testCtx := sdktestutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test"))
	ctx := testCtx.Ctx.WithBlockHeight(1).WithBlockTime(GenesisTime)

	downstream := NewMockDownstream()
	k := oraclekeeper.NewKeeper(storeKey)
	k.SetStakingKeeper(downstream)
	k.SetNFTKeeper(downstream)
	k.SetLotteryKeeper(downstream)
	k.SetGameKeeper(downstream)
	k.SetGovernanceKeeper(downstream)

	return ctx, k, downstream
}

// SetupApp builds the full app on an in-memory database. The chain is not
// initialised.
func SetupApp(t testing.TB) *app.App {
	a, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), "payment-oracle-test")
	require.NoError(t, err)
	return a
}

// Keepers holds the real keepers wired the way the app wires them
type Keepers struct {
	Ctx      sdk.Context
	Oracle   *oraclekeeper.Keeper
	Rewards  *rewardskeeper.Keeper
	Multisig *multisigkeeper.Keeper
}

// SetupKeepers builds the app on an in-memory IAVL multistore and returns its
// keepers with a context writing directly to it
func SetupKeepers(t testing.TB) Keepers {
	a := SetupApp(t)
	ctx := a.NewUncachedContext(cmtproto.Header{
		ChainID: a.ChainID(),
		Height:  1,
		Time:    GenesisTime,
	})

	return Keepers{
		Ctx:      ctx,
		Oracle:   a.OracleKeeper,
		Rewards:  a.RewardsKeeper,
		Multisig: a.MultisigKeeper,
	}
}

// InitRegistry stores an active oracle registry with the given owner
func InitRegistry(t testing.TB, ctx sdk.Context, k *oraclekeeper.Keeper, owner string, oracles []string, required uint32) {
	require.NoError(t, k.SetOracleSet(ctx, types.OracleSet{
		Oracles:               oracles,
		RequiredConfirmations: required,
		IsActive:              true,
		Owner:                 owner,
		Version:               1,
	}))
}
