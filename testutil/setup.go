package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/types"
)

// PropertyTestConfig holds configuration for property-based tests
type PropertyTestConfig struct {
	MinSuccessfulTests int
	MaxDiscardRatio    float64
	Workers            int
	Seed               int64
}

// DefaultPropertyTestConfig returns default configuration for property tests
func DefaultPropertyTestConfig() *PropertyTestConfig {
	return &PropertyTestConfig{
		MinSuccessfulTests: 100,
		MaxDiscardRatio:    5.0,
		Workers:            1,
		Seed:               time.Now().UnixNano(),
	}
}

// NewPropertyTester creates a new property tester with default configuration
func NewPropertyTester(t *testing.T) *gopter.Properties {
	config := DefaultPropertyTestConfig()
	t.Logf("property seed %d", config.Seed)

	parameters := gopter.DefaultTestParametersWithSeed(config.Seed)
	parameters.MinSuccessfulTests = config.MinSuccessfulTests
	parameters.MaxDiscardRatio = config.MaxDiscardRatio
	parameters.Workers = config.Workers
	parameters.MaxSize = 50
	parameters.MinSize = 0
	return gopter.NewProperties(parameters)
}

// AccAddress returns a deterministic bech32 account address for index i
func AccAddress(i int) string {
	return sdk.AccAddress([]byte(fmt.Sprintf("test-account-%07d", i))).String()
}

// Generators for property-based testing

// GenValidAddress generates valid bech32 account addresses
func GenValidAddress() gopter.Gen {
	return gen.SliceOfN(20, gen.UInt8()).Map(func(bytes []byte) string {
		return sdk.AccAddress(bytes).String()
	})
}

// GenValidAmount generates valid positive amounts
func GenValidAmount() gopter.Gen {
	return gen.Int64Range(1, 1000000).Map(func(i int64) math.Int {
		return math.NewInt(i)
	})
}

// GenTxID generates external payment transaction ids
func GenTxID() gopter.Gen {
	return gen.Identifier().Map(func(s string) string {
		return "tx-" + s
	})
}

// GenAction generates valid actions of every kind
func GenAction() gopter.Gen {
	return gen.OneGenOf(
		gopter.CombineGens(GenValidAmount(), gen.OneConstOf("alpha", "beta", "gamma")).Map(func(values []interface{}) types.Action {
			return types.NewStakeCreditAction(values[0].(math.Int), values[1].(string))
		}),
		gen.UInt32Range(1, 5).Map(func(tier uint32) types.Action {
			return types.NewNFTPurchaseAction(tier)
		}),
		gen.UInt32Range(1, 100).Map(func(qty uint32) types.Action {
			return types.NewLotteryTicketAction(qty)
		}),
		gopter.CombineGens(gen.UInt32Range(1, 3), gen.UInt32Range(1, 50)).Map(func(values []interface{}) types.Action {
			return types.NewGameCreditAction(values[0].(uint32), values[1].(uint32))
		}),
		gen.Const(types.NewGovernanceDepositAction()),
		gen.OneConstOf("webhook", "bridge", "airdrop").Map(func(hook string) types.Action {
			return types.NewCustomAction(hook)
		}),
	)
}

// GenConfirmation generates a valid payment attestation without an oracle
func GenConfirmation() gopter.Gen {
	return gopter.CombineGens(
		GenTxID(),
		gen.AlphaString(),
		GenValidAmount(),
		GenValidAddress(),
		GenAction(),
	).Map(func(values []interface{}) types.Confirmation {
		return types.Confirmation{
			TxID:            values[0].(string),
			SenderReference: values[1].(string),
			Amount:          values[2].(math.Int),
			Beneficiary:     values[3].(string),
			Action:          values[4].(types.Action),
		}
	})
}
