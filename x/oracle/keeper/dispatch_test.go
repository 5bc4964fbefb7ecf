package keeper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/testutil"
	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

func TestDispatchRoutesEveryActionKind(t *testing.T) {
	testCases := []struct {
		name     string
		action   commontypes.Action
		method   string
		contract string
		check    func(t *testing.T, call testutil.DownstreamCall)
	}{
		{
			name:     "stake credit",
			action:   commontypes.NewStakeCreditAction(math.NewInt(250), "alpha"),
			method:   "CreditStake",
			contract: types.ContractStaking,
			check: func(t *testing.T, call testutil.DownstreamCall) {
				require.Equal(t, "alpha", call.Pool)
				require.True(t, call.Amount.Equal(math.NewInt(250)))
			},
		},
		{
			name:     "nft purchase",
			action:   commontypes.NewNFTPurchaseAction(3),
			method:   "GenerateMintCommand",
			contract: types.ContractNFT,
			check: func(t *testing.T, call testutil.DownstreamCall) {
				require.Equal(t, uint32(3), call.Tier)
			},
		},
		{
			name:     "lottery ticket",
			action:   commontypes.NewLotteryTicketAction(7),
			method:   "PurchaseTickets",
			contract: types.ContractLottery,
			check: func(t *testing.T, call testutil.DownstreamCall) {
				require.Equal(t, uint32(7), call.Quantity)
			},
		},
		{
			name:     "game credit",
			action:   commontypes.NewGameCreditAction(2, 25),
			method:   "CreditSpins",
			contract: types.ContractGame,
			check: func(t *testing.T, call testutil.DownstreamCall) {
				require.Equal(t, uint32(2), call.Tier)
				require.Equal(t, uint32(25), call.Spins)
			},
		},
		{
			name:     "governance deposit",
			action:   commontypes.NewGovernanceDepositAction(),
			method:   "Deposit",
			contract: types.ContractGovernance,
			check: func(t *testing.T, call testutil.DownstreamCall) {
				// the payment amount is deposited
				require.True(t, call.Amount.Equal(math.NewInt(1000)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 1, 1)
			c := newConfirmation("tx-"+tc.method, 1000, tc.action)

			consensus, err := f.submit(c, f.oracles[0])
			require.NoError(t, err)
			require.True(t, consensus)

			calls := f.downstream.CallsFor(c.TxID)
			require.Len(t, calls, 1)
			require.Equal(t, tc.method, calls[0].Method)
			require.Equal(t, c.Beneficiary, calls[0].Account)

			address, found := f.k.GetContractAddress(f.ctx, tc.contract)
			require.True(t, found)
			require.Equal(t, address, calls[0].Contract)

			tc.check(t, calls[0])
		})
	}
}

func TestDispatchCustomActionEmitsEvent(t *testing.T) {
	f := newFixture(t, 1, 1)
	f.ctx = f.ctx.WithEventManager(sdk.NewEventManager())

	consensus, err := f.submit(newConfirmation("tx-custom", 1000, commontypes.NewCustomAction("webhook")), f.oracles[0])
	require.NoError(t, err)
	require.True(t, consensus)
	require.Empty(t, f.downstream.Calls)

	event, found := findEvent(f.ctx, types.EventTypeCustomAction)
	require.True(t, found)
	require.Equal(t, "webhook", attribute(event, types.AttributeKeyHook))
	require.Equal(t, "1000", attribute(event, types.AttributeKeyAmount))
}

type DispatchTestSuite struct {
	suite.Suite
	f *fixture
	c commontypes.Confirmation
}

func TestDispatchTestSuite(t *testing.T) {
	suite.Run(t, new(DispatchTestSuite))
}

func (suite *DispatchTestSuite) SetupTest() {
	suite.f = newFixture(suite.T(), 2, 1)
	suite.c = newConfirmation("tx-dispatch", 1000, commontypes.NewGameCreditAction(1, 10))
}

func (suite *DispatchTestSuite) setAtomic(atomic bool) {
	params := suite.f.k.GetParams(suite.f.ctx)
	params.AtomicDispatch = atomic
	suite.Require().NoError(suite.f.k.UpdateParams(suite.f.ctx, suite.f.owner, params))
}

func (suite *DispatchTestSuite) TestAtomicFailureRevertsConfirmation() {
	f := suite.f
	f.downstream.Err = errors.New("game contract paused")

	consensus, err := f.submit(suite.c, f.oracles[0])
	suite.Require().Error(err)
	suite.Require().True(types.IsDownstreamError(err))
	suite.Require().False(consensus)

	// the status flip was discarded together with the failed call
	_, found := f.payment(suite.c.TxID)
	suite.Require().False(found)
	suite.Require().Zero(f.k.GetPaymentCount(f.ctx))
	suite.Require().Empty(f.k.GetAuditLogsByTxID(f.ctx, suite.c.TxID))

	f.downstream.Err = nil
	consensus, err = f.submit(suite.c, f.oracles[0])
	suite.Require().NoError(err)
	suite.Require().True(consensus)

	payment, _ := f.payment(suite.c.TxID)
	suite.Require().Equal(commontypes.DispatchStatusDispatched, payment.DispatchStatus)
}

func (suite *DispatchTestSuite) TestBestEffortFailureKeepsConfirmation() {
	f := suite.f
	suite.setAtomic(false)
	f.downstream.Err = errors.New("game contract paused")

	consensus, err := f.submit(suite.c, f.oracles[0])
	suite.Require().ErrorIs(err, types.ErrCrossContractCallFailed)
	suite.Require().True(consensus)

	payment, found := f.payment(suite.c.TxID)
	suite.Require().True(found)
	suite.Require().Equal(commontypes.PaymentStatusConfirmed, payment.Status)
	suite.Require().Equal(commontypes.DispatchStatusFailed, payment.DispatchStatus)
	suite.Require().Contains(payment.DispatchError, "game contract paused")

	// later confirmations never retry the dispatch
	_, err = f.submit(suite.c, f.oracles[1])
	suite.Require().ErrorIs(err, types.ErrPaymentAlreadyProcessed)
	suite.Require().Len(f.downstream.CallsFor(suite.c.TxID), 1)
}

func (suite *DispatchTestSuite) TestRetryDispatch() {
	f := suite.f
	suite.setAtomic(false)
	f.downstream.Err = errors.New("game contract paused")

	_, err := f.submit(suite.c, f.oracles[0])
	suite.Require().Error(err)

	_, err = f.k.RetryDispatch(f.ctx, f.oracles[0], suite.c.TxID)
	suite.Require().ErrorIs(err, types.ErrUnauthorized)

	status, err := f.k.RetryDispatch(f.ctx, f.owner, suite.c.TxID)
	suite.Require().ErrorIs(err, types.ErrCrossContractCallFailed)
	suite.Require().Equal(commontypes.DispatchStatusFailed, status)

	f.downstream.Err = nil
	status, err = f.k.RetryDispatch(f.ctx, f.owner, suite.c.TxID)
	suite.Require().NoError(err)
	suite.Require().Equal(commontypes.DispatchStatusDispatched, status)

	payment, _ := f.payment(suite.c.TxID)
	suite.Require().Equal(commontypes.DispatchStatusDispatched, payment.DispatchStatus)
	suite.Require().Empty(payment.DispatchError)

	_, err = f.k.RetryDispatch(f.ctx, f.owner, suite.c.TxID)
	suite.Require().ErrorIs(err, types.ErrDispatchNotRetryable)
	suite.Require().Len(f.downstream.CallsFor(suite.c.TxID), 3)
}

func (suite *DispatchTestSuite) TestRetryDispatchRequiresFailedConfirmedRecord() {
	f := newFixture(suite.T(), 2, 2)

	_, err := f.k.RetryDispatch(f.ctx, f.owner, "missing")
	suite.Require().ErrorIs(err, types.ErrPaymentNotFound)

	_, err = f.submit(suite.c, f.oracles[0])
	suite.Require().NoError(err)

	_, err = f.k.RetryDispatch(f.ctx, f.owner, suite.c.TxID)
	suite.Require().ErrorIs(err, types.ErrDispatchNotRetryable)
}

func (suite *DispatchTestSuite) TestMissingContractAddress() {
	ctx, k, downstream := testutil.SetupOracleKeeper(suite.T())
	oracle := testutil.AccAddress(1)
	suite.Require().NoError(k.SetOracleSet(ctx, commontypes.OracleSet{
		Oracles:               []string{oracle},
		RequiredConfirmations: 1,
		IsActive:              true,
		Owner:                 testutil.AccAddress(0),
	}))

	c := suite.c
	c.Oracle = oracle
	consensus, err := k.SubmitConfirmation(ctx, c)
	suite.Require().ErrorIs(err, types.ErrContractNotConfigured)
	suite.Require().False(consensus)
	suite.Require().Empty(downstream.Calls)

	_, found := k.GetPendingPayment(ctx, c.TxID)
	suite.Require().False(found)
}
