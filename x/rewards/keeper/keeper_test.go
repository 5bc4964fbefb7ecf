package keeper_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/suite"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/testutil"
	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/rewards/keeper"
	"github.com/payment-oracle/cosmos/x/rewards/types"
)

type RewardsTestSuite struct {
	suite.Suite
	ctx     sdk.Context
	keepers testutil.Keepers
	alice   string
	bob     string
}

func TestRewardsTestSuite(t *testing.T) {
	suite.Run(t, new(RewardsTestSuite))
}

func (suite *RewardsTestSuite) SetupTest() {
	suite.keepers = testutil.SetupKeepers(suite.T())
	suite.ctx = suite.keepers.Ctx
	suite.alice = testutil.AccAddress(1)
	suite.bob = testutil.AccAddress(2)
}

func (suite *RewardsTestSuite) assertSupplyInvariant() {
	msg, broken := keeper.TotalSupplyInvariant(*suite.keepers.Rewards)(suite.ctx)
	suite.Require().False(broken, msg)
}

func (suite *RewardsTestSuite) TestDownstreamEntryPoints() {
	k := suite.keepers.Rewards

	suite.Require().NoError(k.CreditStake(suite.ctx, "staking", suite.alice, "alpha", math.NewInt(500), "tx-1"))
	suite.Require().NoError(k.PurchaseTickets(suite.ctx, "lottery", suite.alice, 3, "tx-2"))
	suite.Require().NoError(k.CreditSpins(suite.ctx, "game", suite.alice, 2, 20, "tx-3"))
	suite.Require().NoError(k.Deposit(suite.ctx, "governance", suite.alice, math.NewInt(1000), "tx-4"))

	balances := k.GetAllCreditBalances(suite.ctx, suite.alice)
	suite.Require().Len(balances, 4)
	suite.Require().True(balances[types.StakeDenom("alpha")].Equal(math.NewInt(500)))
	suite.Require().True(balances[types.TicketDenom].Equal(math.NewInt(3)))
	suite.Require().True(balances[types.SpinDenom(2)].Equal(math.NewInt(20)))
	suite.Require().True(balances[types.GovDepositDenom].Equal(math.NewInt(1000)))

	credit, found := k.GetCredit(suite.ctx, "tx-3", types.SpinDenom(2))
	suite.Require().True(found)
	suite.Require().Equal("game", credit.Contract)
	suite.Require().Equal(testutil.GenesisTime.Unix(), credit.IssuedAt)

	logs := suite.keepers.Oracle.GetAuditLogsByEventType(suite.ctx, commontypes.AuditCreditIssued)
	suite.Require().Len(logs, 4)

	suite.assertSupplyInvariant()
}

func (suite *RewardsTestSuite) TestDuplicateCreditRejected() {
	k := suite.keepers.Rewards

	suite.Require().NoError(k.PurchaseTickets(suite.ctx, "lottery", suite.alice, 3, "tx-1"))

	err := k.PurchaseTickets(suite.ctx, "lottery", suite.bob, 5, "tx-1")
	suite.Require().ErrorIs(err, types.ErrDuplicateCredit)
	suite.Require().True(k.GetCreditBalance(suite.ctx, suite.bob, types.TicketDenom).IsZero())
	suite.Require().True(k.GetTotalSupply(suite.ctx, types.TicketDenom).Equal(math.NewInt(3)))

	// the same origin tx may still credit another denom
	suite.Require().NoError(k.CreditSpins(suite.ctx, "game", suite.alice, 1, 5, "tx-1"))
}

func (suite *RewardsTestSuite) TestInvalidCredits() {
	k := suite.keepers.Rewards

	testCases := []struct {
		name   string
		credit commontypes.Credit
		err    error
	}{
		{"zero amount", commontypes.Credit{Denom: types.TicketDenom, Holder: suite.alice, Amount: math.ZeroInt(), OriginTx: "tx-1"}, types.ErrInvalidAmount},
		{"bad holder", commontypes.Credit{Denom: types.TicketDenom, Holder: "nobody", Amount: math.NewInt(1), OriginTx: "tx-1"}, types.ErrInvalidCredit},
		{"bad denom", commontypes.Credit{Denom: "!", Holder: suite.alice, Amount: math.NewInt(1), OriginTx: "tx-1"}, types.ErrInvalidDenom},
		{"no origin", commontypes.Credit{Denom: types.TicketDenom, Holder: suite.alice, Amount: math.NewInt(1)}, types.ErrInvalidCredit},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := k.IssueCredit(suite.ctx, tc.credit)
			suite.Require().ErrorIs(err, tc.err)
		})
	}
	suite.Require().Empty(k.GetAllCredits(suite.ctx))
}

func (suite *RewardsTestSuite) TestBurnCredit() {
	k := suite.keepers.Rewards
	suite.Require().NoError(k.PurchaseTickets(suite.ctx, "lottery", suite.alice, 10, "tx-1"))

	suite.Require().NoError(k.BurnCredit(suite.ctx, suite.alice, types.TicketDenom, math.NewInt(4)))
	suite.Require().True(k.GetCreditBalance(suite.ctx, suite.alice, types.TicketDenom).Equal(math.NewInt(6)))
	suite.Require().True(k.GetTotalSupply(suite.ctx, types.TicketDenom).Equal(math.NewInt(6)))

	err := k.BurnCredit(suite.ctx, suite.alice, types.TicketDenom, math.NewInt(7))
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	err = k.BurnCredit(suite.ctx, suite.alice, types.TicketDenom, math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	// burning everything removes the balance entry
	suite.Require().NoError(k.BurnCredit(suite.ctx, suite.alice, types.TicketDenom, math.NewInt(6)))
	suite.Require().Empty(k.GetAllCreditBalances(suite.ctx, suite.alice))
	suite.Require().Empty(k.GetAllSupply(suite.ctx))

	suite.assertSupplyInvariant()
}

func (suite *RewardsTestSuite) TestTransferCredit() {
	k := suite.keepers.Rewards
	denom := types.StakeDenom("alpha")
	suite.Require().NoError(k.CreditStake(suite.ctx, "staking", suite.alice, "alpha", math.NewInt(100), "tx-1"))

	suite.Require().NoError(k.TransferCredit(suite.ctx, suite.alice, suite.bob, denom, math.NewInt(30)))
	suite.Require().True(k.GetCreditBalance(suite.ctx, suite.alice, denom).Equal(math.NewInt(70)))
	suite.Require().True(k.GetCreditBalance(suite.ctx, suite.bob, denom).Equal(math.NewInt(30)))
	suite.Require().True(k.GetTotalSupply(suite.ctx, denom).Equal(math.NewInt(100)))

	err := k.TransferCredit(suite.ctx, suite.bob, suite.alice, denom, math.NewInt(31))
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	err = k.TransferCredit(suite.ctx, suite.alice, "nobody", denom, math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrInvalidCredit)

	suite.assertSupplyInvariant()
}

func (suite *RewardsTestSuite) TestMsgServerAndQueries() {
	k := suite.keepers.Rewards
	msgServer := keeper.NewMsgServerImpl(*k)
	querier := keeper.NewQuerier(*k)

	suite.Require().NoError(k.PurchaseTickets(suite.ctx, "lottery", suite.alice, 10, "tx-1"))
	suite.Require().NoError(k.CreditSpins(suite.ctx, "game", suite.alice, 1, 5, "tx-2"))

	burnResp, err := msgServer.BurnCredit(suite.ctx, types.NewMsgBurnCredit(suite.alice, types.TicketDenom, math.NewInt(2)))
	suite.Require().NoError(err)
	suite.Require().Equal("8", burnResp.Remaining)

	_, err = msgServer.TransferCredit(suite.ctx, types.NewMsgTransferCredit(suite.alice, suite.bob, types.TicketDenom, math.NewInt(3)))
	suite.Require().NoError(err)

	balanceResp, err := querier.Balance(suite.ctx, &types.QueryBalanceRequest{Holder: suite.bob, Denom: types.TicketDenom})
	suite.Require().NoError(err)
	suite.Require().True(balanceResp.Balance.Amount.Equal(math.NewInt(3)))

	balancesResp, err := querier.Balances(suite.ctx, &types.QueryBalancesRequest{Holder: suite.alice})
	suite.Require().NoError(err)
	suite.Require().Len(balancesResp.Balances, 2)
	suite.Require().Equal(types.SpinDenom(1), balancesResp.Balances[0].Denom)
	suite.Require().Equal(types.TicketDenom, balancesResp.Balances[1].Denom)

	creditResp, err := querier.Credit(suite.ctx, &types.QueryCreditRequest{OriginTx: "tx-1", Denom: types.TicketDenom})
	suite.Require().NoError(err)
	suite.Require().Equal(suite.alice, creditResp.Credit.Holder)

	_, err = querier.Credit(suite.ctx, &types.QueryCreditRequest{OriginTx: "tx-9", Denom: types.TicketDenom})
	suite.Require().ErrorIs(err, types.ErrCreditNotFound)

	supplyResp, err := querier.Supply(suite.ctx, &types.QuerySupplyRequest{Denom: types.TicketDenom})
	suite.Require().NoError(err)
	suite.Require().True(supplyResp.Amount.Equal(math.NewInt(8)))
}

type creditOp struct {
	kind   int // 0 issue, 1 burn, 2 transfer
	holder int
	amount int64
}

func genCreditOps() gopter.Gen {
	return gen.SliceOf(
		gopter.CombineGens(gen.IntRange(0, 2), gen.IntRange(0, 2), gen.Int64Range(1, 100)).Map(func(values []interface{}) creditOp {
			return creditOp{kind: values[0].(int), holder: values[1].(int), amount: values[2].(int64)}
		}),
	)
}

// **Feature: payment-oracle-consensus, Property 8: credit supply conservation**
func TestProperty_SupplyMatchesBalances(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("supply always equals the sum of balances", prop.ForAll(
		func(ops []creditOp) bool {
			keepers := testutil.SetupKeepers(t)
			ctx, k := keepers.Ctx, keepers.Rewards
			holders := []string{testutil.AccAddress(1), testutil.AccAddress(2), testutil.AccAddress(3)}
			issued := math.ZeroInt()
			burned := math.ZeroInt()

			for i, op := range ops {
				holder := holders[op.holder]
				amount := math.NewInt(op.amount)
				switch op.kind {
				case 0:
					if err := k.PurchaseTickets(ctx, "lottery", holder, uint32(op.amount), txID(i)); err != nil {
						return false
					}
					issued = issued.Add(amount)
				case 1:
					if k.BurnCredit(ctx, holder, types.TicketDenom, amount) == nil {
						burned = burned.Add(amount)
					}
				case 2:
					_ = k.TransferCredit(ctx, holder, holders[(op.holder+1)%len(holders)], types.TicketDenom, amount)
				}
			}

			if _, broken := keeper.TotalSupplyInvariant(*k)(ctx); broken {
				return false
			}
			return k.GetTotalSupply(ctx, types.TicketDenom).Equal(issued.Sub(burned))
		},
		genCreditOps(),
	))

	properties.TestingRun(t)
}

func txID(i int) string {
	return "tx-" + string(rune('a'+i%26)) + string(rune('a'+i/26%26)) + string(rune('a'+i/676%26))
}
