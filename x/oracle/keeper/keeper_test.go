package keeper_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/testutil"
	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/keeper"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// fixture is an oracle keeper with an initialised registry and every
// downstream contract configured
type fixture struct {
	ctx        sdk.Context
	k          *keeper.Keeper
	downstream *testutil.MockDownstream
	owner      string
	oracles    []string
	outsider   string
}

func newFixture(t testing.TB, oracleCount int, required uint32) *fixture {
	ctx, k, downstream := testutil.SetupOracleKeeper(t)

	oracles := make([]string, oracleCount)
	for i := range oracles {
		oracles[i] = testutil.AccAddress(i + 1)
	}
	sort.Strings(oracles)

	f := &fixture{
		ctx:        ctx,
		k:          k,
		downstream: downstream,
		owner:      testutil.AccAddress(0),
		oracles:    oracles,
		outsider:   testutil.AccAddress(999),
	}

	require.NoError(t, k.SetOracleSet(ctx, commontypes.OracleSet{
		Oracles:               oracles,
		RequiredConfirmations: required,
		IsActive:              true,
		Owner:                 f.owner,
		Version:               1,
	}))
	for i, name := range types.ContractNames {
		require.NoError(t, k.SetContractAddress(ctx, f.owner, name, testutil.AccAddress(100+i)))
	}

	return f
}

func (f *fixture) submit(c commontypes.Confirmation, oracle string) (bool, error) {
	c.Oracle = oracle
	return f.k.SubmitConfirmation(f.ctx, c)
}

func (f *fixture) advance(d time.Duration) {
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(d))
}

func (f *fixture) payment(txID string) (commontypes.PendingPayment, bool) {
	return f.k.GetPendingPayment(f.ctx, txID)
}

func newConfirmation(txID string, amount int64, action commontypes.Action) commontypes.Confirmation {
	return commontypes.Confirmation{
		TxID:            txID,
		SenderReference: "ref-" + txID,
		Amount:          math.NewInt(amount),
		Beneficiary:     testutil.AccAddress(500),
		Action:          action,
	}
}

func findEvent(ctx sdk.Context, eventType string) (sdk.Event, bool) {
	for _, event := range ctx.EventManager().Events() {
		if event.Type == eventType {
			return event, true
		}
	}
	return sdk.Event{}, false
}

func hasEvent(ctx sdk.Context, eventType string) bool {
	_, found := findEvent(ctx, eventType)
	return found
}

func attribute(event sdk.Event, key string) string {
	for _, attr := range event.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

func keeperInvariants(f *fixture) sdk.Invariant {
	return keeper.AllInvariants(*f.k)
}

func expectedDownstreamCalls(action commontypes.Action) int {
	if action.Kind == commontypes.ActionKindCustom {
		return 0
	}
	return 1
}

func genThreshold() gopter.Gen {
	// (oracle count, required confirmations) with 1 <= required <= count
	return gopter.CombineGens(gen.IntRange(1, 7), gen.IntRange(1, 7)).Map(func(values []interface{}) []int {
		count, required := values[0].(int), values[1].(int)
		if required > count {
			required = count
		}
		return []int{count, required}
	})
}

// **Feature: payment-oracle-consensus, Property 1: exactly-once dispatch**
func TestProperty_DispatcherFiresAtMostOnce(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("every oracle confirming twice dispatches once", prop.ForAll(
		func(c commontypes.Confirmation, threshold []int) bool {
			f := newFixture(t, threshold[0], uint32(threshold[1]))

			consensusCount := 0
			for round := 0; round < 2; round++ {
				for _, oracle := range f.oracles {
					consensus, _ := f.submit(c, oracle)
					if consensus {
						consensusCount++
					}
				}
			}

			payment, found := f.payment(c.TxID)
			return consensusCount == 1 &&
				found &&
				payment.Status == commontypes.PaymentStatusConfirmed &&
				payment.DispatchStatus == commontypes.DispatchStatusDispatched &&
				len(f.downstream.CallsFor(c.TxID)) == expectedDownstreamCalls(c.Action)
		},
		testutil.GenConfirmation(),
		genThreshold(),
	))

	properties.TestingRun(t)
}

// **Feature: payment-oracle-consensus, Property 2: quorum threshold**
func TestProperty_BelowThreshold_StaysPending(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("fewer than N confirmations never reach consensus", prop.ForAll(
		func(c commontypes.Confirmation, threshold []int) bool {
			count, required := threshold[0], threshold[1]
			if required < 2 {
				required = 2
				count++
			}
			f := newFixture(t, count, uint32(required))

			for _, oracle := range f.oracles[:required-1] {
				consensus, err := f.submit(c, oracle)
				if consensus || err != nil {
					return false
				}
			}

			payment, found := f.payment(c.TxID)
			return found &&
				payment.Status == commontypes.PaymentStatusPending &&
				len(payment.Confirmations) == required-1 &&
				len(f.downstream.Calls) == 0
		},
		testutil.GenConfirmation(),
		genThreshold(),
	))

	properties.TestingRun(t)
}

// **Feature: payment-oracle-consensus, Property 3: unauthorized submissions**
func TestProperty_NonOracleNeverMutates(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("non-oracle submission leaves the store untouched", prop.ForAll(
		func(c commontypes.Confirmation, other commontypes.Confirmation, outsider string) bool {
			f := newFixture(t, 3, 2)

			// an existing record the outsider tries to tamper with
			other.TxID = c.TxID + "-existing"
			if _, err := f.submit(other, f.oracles[0]); err != nil {
				return false
			}
			before, _ := f.payment(other.TxID)

			_, errNew := f.submit(c, outsider)
			tampered := c
			tampered.TxID = other.TxID
			_, errTamper := f.submit(tampered, outsider)

			_, created := f.payment(c.TxID)
			after, _ := f.payment(other.TxID)

			return errors.Is(errNew, types.ErrUnauthorizedOracle) &&
				errors.Is(errTamper, types.ErrUnauthorizedOracle) &&
				!created &&
				f.k.GetPaymentCount(f.ctx) == 1 &&
				after.Status == before.Status &&
				len(after.Confirmations) == len(before.Confirmations)
		},
		testutil.GenConfirmation(),
		testutil.GenConfirmation(),
		testutil.GenValidAddress(),
	))

	properties.TestingRun(t)
}

// **Feature: payment-oracle-consensus, Property 4: disagreement rejects**
func TestProperty_DataMismatch_RejectsRegardlessOfOrder(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("differing amounts reject the record", prop.ForAll(
		func(c commontypes.Confirmation, delta int64, swap bool) bool {
			f := newFixture(t, 3, 2)

			first, second := c, c
			second.Amount = c.Amount.AddRaw(delta)
			if swap {
				first, second = second, first
			}

			if _, err := f.submit(first, f.oracles[0]); err != nil {
				return false
			}
			consensus, err := f.submit(second, f.oracles[1])
			if consensus || !errors.Is(err, types.ErrPaymentDataMismatch) {
				return false
			}

			payment, _ := f.payment(c.TxID)
			if payment.Status != commontypes.PaymentStatusRejected {
				return false
			}

			for _, attempt := range []commontypes.Confirmation{first, second} {
				if _, err := f.submit(attempt, f.oracles[2]); !errors.Is(err, types.ErrPaymentAlreadyProcessed) {
					return false
				}
			}
			return len(f.downstream.Calls) == 0
		},
		testutil.GenConfirmation(),
		gen.Int64Range(1, 1000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

type submission struct {
	oracle  int // len(oracles) stands for an outsider
	variant bool
	delay   int64
}

func genSubmissions() gopter.Gen {
	return gen.SliceOf(
		gopter.CombineGens(gen.IntRange(0, 3), gen.Bool(), gen.Int64Range(0, 2000)).Map(func(values []interface{}) submission {
			return submission{oracle: values[0].(int), variant: values[1].(bool), delay: values[2].(int64)}
		}),
	)
}

// **Feature: payment-oracle-consensus, Property 5: forward-only status**
func TestProperty_StatusOnlyMovesForward(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("a terminal status is never left", prop.ForAll(
		func(c commontypes.Confirmation, submissions []submission) bool {
			f := newFixture(t, 3, 3)
			accounts := append(append([]string{}, f.oracles...), f.outsider)

			var terminal commontypes.PaymentStatus
			seenTerminal := false
			for _, s := range submissions {
				f.advance(time.Duration(s.delay) * time.Second)

				attempt := c
				if s.variant {
					attempt.Amount = c.Amount.AddRaw(1)
				}
				_, _ = f.submit(attempt, accounts[s.oracle])

				payment, found := f.payment(c.TxID)
				if !found {
					if seenTerminal {
						return false
					}
					continue
				}
				if seenTerminal && payment.Status != terminal {
					return false
				}
				if payment.Status.IsTerminal() {
					seenTerminal = true
					terminal = payment.Status
				}
			}

			return len(f.downstream.CallsFor(c.TxID)) <= 1
		},
		testutil.GenConfirmation(),
		genSubmissions(),
	))

	properties.TestingRun(t)
}

// **Feature: payment-oracle-consensus, Property 6: minimum oracle count**
func TestProperty_RemoveAtThreshold_Fails(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("removal below the threshold leaves the registry unchanged", prop.ForAll(
		func(count int, index int) bool {
			f := newFixture(t, count, uint32(count))
			before := f.k.GetOracleSet(f.ctx)

			_, err := f.k.RemoveOracle(f.ctx, f.owner, f.oracles[index%count])
			after := f.k.GetOracleSet(f.ctx)

			return errors.Is(err, types.ErrMinimumOraclesRequired) &&
				after.Version == before.Version &&
				len(after.Oracles) == count &&
				after.RequiredConfirmations == uint32(count)
		},
		gen.IntRange(1, 10),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
