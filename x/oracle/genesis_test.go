package oracle_test

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	"github.com/payment-oracle/cosmos/testutil"
	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

func validGenesis() *oracle.GenesisState {
	oracles := []string{testutil.AccAddress(1), testutil.AccAddress(2), testutil.AccAddress(3)}
	sort.Strings(oracles)

	genesis := oracle.DefaultGenesisState()
	genesis.OracleSet = commontypes.OracleSet{
		Oracles:               oracles,
		RequiredConfirmations: 2,
		IsActive:              true,
		Owner:                 testutil.AccAddress(0),
		Version:               1,
	}
	genesis.Contracts = []commontypes.ContractAddress{
		{Name: types.ContractStaking, Address: testutil.AccAddress(100)},
	}
	return genesis
}

func pendingPayment(oracleAddr string) commontypes.PendingPayment {
	c := commontypes.Confirmation{
		TxID:            "tx-1",
		SenderReference: "ref",
		Amount:          math.NewInt(1000),
		Beneficiary:     testutil.AccAddress(500),
		Action:          commontypes.NewLotteryTicketAction(1),
	}
	digest, err := c.Digest()
	if err != nil {
		panic(err)
	}
	return commontypes.PendingPayment{
		TxID:            c.TxID,
		SenderReference: c.SenderReference,
		Amount:          c.Amount,
		Beneficiary:     c.Beneficiary,
		Action:          c.Action,
		Confirmations:   []string{oracleAddr},
		CreatedAt:       testutil.GenesisTime.Unix(),
		Status:          commontypes.PaymentStatusPending,
		Digest:          digest,
		Sequence:        1,
	}
}

func TestValidateGenesis(t *testing.T) {
	require.NoError(t, oracle.ValidateGenesis(oracle.DefaultGenesisState()))
	require.NoError(t, oracle.ValidateGenesis(validGenesis()))

	withPayment := validGenesis()
	withPayment.Payments = []commontypes.PendingPayment{pendingPayment(withPayment.OracleSet.Oracles[0])}
	require.NoError(t, oracle.ValidateGenesis(withPayment))

	testCases := []struct {
		name   string
		mutate func(gs *oracle.GenesisState)
	}{
		{"zero timeout", func(gs *oracle.GenesisState) { gs.Params.ConfirmationTimeout = 0 }},
		{"threshold above oracle count", func(gs *oracle.GenesisState) { gs.OracleSet.RequiredConfirmations = 4 }},
		{"unsorted oracles", func(gs *oracle.GenesisState) {
			gs.OracleSet.Oracles[0], gs.OracleSet.Oracles[1] = gs.OracleSet.Oracles[1], gs.OracleSet.Oracles[0]
		}},
		{"unknown contract", func(gs *oracle.GenesisState) {
			gs.Contracts = append(gs.Contracts, commontypes.ContractAddress{Name: "bridge", Address: testutil.AccAddress(101)})
		}},
		{"duplicate contract", func(gs *oracle.GenesisState) { gs.Contracts = append(gs.Contracts, gs.Contracts[0]) }},
		{"duplicate payment", func(gs *oracle.GenesisState) {
			p := commontypes.PendingPayment{TxID: "tx-1", Confirmations: []string{gs.OracleSet.Oracles[0]}}
			gs.Payments = []commontypes.PendingPayment{p, p}
		}},
		{"digest does not match", func(gs *oracle.GenesisState) {
			p := pendingPayment(gs.OracleSet.Oracles[0])
			p.Amount = math.NewInt(2000)
			gs.Payments = []commontypes.PendingPayment{p}
		}},
		{"missing digest", func(gs *oracle.GenesisState) {
			p := pendingPayment(gs.OracleSet.Oracles[0])
			p.Digest = nil
			gs.Payments = []commontypes.PendingPayment{p}
		}},
		{"confirmed without dispatch", func(gs *oracle.GenesisState) {
			gs.Payments = []commontypes.PendingPayment{{
				TxID:          "tx-1",
				Confirmations: []string{gs.OracleSet.Oracles[0]},
				Status:        commontypes.PaymentStatusConfirmed,
			}}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gs := validGenesis()
			tc.mutate(gs)
			require.Error(t, oracle.ValidateGenesis(gs))
		})
	}
}

func TestGenesisRoundTrip(t *testing.T) {
	ctx, k, _ := testutil.SetupOracleKeeper(t)
	genesis := validGenesis()
	require.NoError(t, oracle.InitGenesis(ctx, *k, genesis))

	c := commontypes.Confirmation{
		TxID:            "tx-1",
		SenderReference: "ref",
		Amount:          math.NewInt(1000),
		Beneficiary:     testutil.AccAddress(500),
		Action:          commontypes.NewStakeCreditAction(math.NewInt(1000), "alpha"),
	}
	for _, o := range genesis.OracleSet.Oracles[:2] {
		c.Oracle = o
		_, err := k.SubmitConfirmation(ctx, c)
		require.NoError(t, err)
	}
	c.TxID = "tx-2"
	c.Oracle = genesis.OracleSet.Oracles[0]
	_, err := k.SubmitConfirmation(ctx, c)
	require.NoError(t, err)

	exported := oracle.ExportGenesis(ctx, *k)
	require.NoError(t, oracle.ValidateGenesis(exported))
	require.Len(t, exported.Payments, 2)

	// through JSON, the way the app host carries it
	bz, err := json.Marshal(exported)
	require.NoError(t, err)
	var imported oracle.GenesisState
	require.NoError(t, json.Unmarshal(bz, &imported))

	ctx2, k2, _ := testutil.SetupOracleKeeper(t)
	require.NoError(t, oracle.InitGenesis(ctx2, *k2, &imported))

	reexported := oracle.ExportGenesis(ctx2, *k2)
	require.Equal(t, exported, reexported)

	// sequences continue after the imported records
	payment, _ := k2.GetPendingPayment(ctx2, "tx-2")
	c.TxID = "tx-3"
	_, err = k2.SubmitConfirmation(ctx2, c)
	require.NoError(t, err)
	next, _ := k2.GetPendingPayment(ctx2, "tx-3")
	require.Greater(t, next.Sequence, payment.Sequence)
}

func TestDefaultGenesisLeavesRegistryUninitialised(t *testing.T) {
	ctx, k, _ := testutil.SetupOracleKeeper(t)
	require.NoError(t, oracle.InitGenesis(ctx, *k, oracle.DefaultGenesisState()))

	set := k.GetOracleSet(ctx)
	require.Empty(t, set.Owner)
	require.False(t, set.IsActive)

	exported := oracle.ExportGenesis(ctx, *k)
	require.Equal(t, oracle.DefaultGenesisState(), exported)
}
