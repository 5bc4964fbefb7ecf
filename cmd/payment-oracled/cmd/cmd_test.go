package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	"github.com/payment-oracle/cosmos/app"
	"github.com/payment-oracle/cosmos/cmd/payment-oracled/cmd"
	"github.com/payment-oracle/cosmos/testutil"
	commontypes "github.com/payment-oracle/cosmos/types"
	oracletypes "github.com/payment-oracle/cosmos/x/oracle/types"
	rewardstypes "github.com/payment-oracle/cosmos/x/rewards/types"
)

func run(t *testing.T, args ...string) []byte {
	t.Helper()
	rootCmd := cmd.NewRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.Bytes()
}

func envelope(t *testing.T, msgType string, msg interface{}) map[string]interface{} {
	bz, err := json.Marshal(msg)
	require.NoError(t, err)
	return map[string]interface{}{"type": msgType, "value": json.RawMessage(bz)}
}

func TestInitTxQueryExport(t *testing.T) {
	home := t.TempDir()
	owner := testutil.AccAddress(0)
	oracles := []string{testutil.AccAddress(1), testutil.AccAddress(2)}
	beneficiary := testutil.AccAddress(500)

	run(t, "init", owner,
		"--home", home,
		"--oracles", strings.Join(oracles, ","),
		"--required", "2",
		"--contracts", "lottery="+testutil.AccAddress(100),
		"--genesis-time", "2025-01-01T00:00:00Z",
	)
	require.FileExists(t, filepath.Join(home, "config", "app.toml"))
	require.FileExists(t, filepath.Join(home, "config", "genesis.json"))

	action := commontypes.NewLotteryTicketAction(2)
	msgs := make([]map[string]interface{}, 0, len(oracles))
	for _, oracle := range oracles {
		msg := oracletypes.NewMsgSubmitConfirmation(oracle, "tx-1", "ref-1", math.NewInt(1000), beneficiary, action)
		msgs = append(msgs, envelope(t, "oracle/MsgSubmitConfirmation", msg))
	}
	bz, err := json.Marshal(msgs)
	require.NoError(t, err)
	txFile := filepath.Join(t.TempDir(), "msgs.json")
	require.NoError(t, os.WriteFile(txFile, bz, 0o600))

	var txOut struct {
		Height  int64          `json:"height"`
		Results []app.TxResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(run(t, "tx", txFile, "--home", home, "--block-time", "2025-01-01T00:00:10Z"), &txOut))
	require.Equal(t, int64(2), txOut.Height)
	require.Len(t, txOut.Results, 2)
	for _, res := range txOut.Results {
		require.Zero(t, res.Code, res.Log)
	}

	var payment oracletypes.QueryPendingPaymentResponse
	require.NoError(t, json.Unmarshal(run(t, "query", "payment", "tx-1", "--home", home), &payment))
	require.Equal(t, commontypes.PaymentStatusConfirmed, payment.Payment.Status)
	require.Len(t, payment.Payment.Confirmations, 2)

	var balances rewardstypes.QueryBalancesResponse
	require.NoError(t, json.Unmarshal(run(t, "query", "balances", beneficiary, "--home", home), &balances))
	require.Len(t, balances.Balances, 1)
	require.Equal(t, rewardstypes.TicketDenom, balances.Balances[0].Denom)
	require.True(t, balances.Balances[0].Amount.Equal(math.NewInt(2)))

	var doc app.GenesisDoc
	require.NoError(t, json.Unmarshal(run(t, "export", "--home", home), &doc))
	require.Contains(t, doc.AppState, oracletypes.ModuleName)
	require.Contains(t, doc.AppState, rewardstypes.ModuleName)
}

func TestTxRequiresInit(t *testing.T) {
	rootCmd := cmd.NewRootCmd()
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"query", "params", "--home", t.TempDir(), "--log-level", "error"})
	require.ErrorContains(t, rootCmd.Execute(), "not initialised")
}

func TestConfigPrecedence(t *testing.T) {
	chainID := func(t *testing.T, home string, extra ...string) string {
		var out struct {
			ChainID string `json:"chain_id"`
		}
		require.NoError(t, json.Unmarshal(run(t, append([]string{"init", "--home", home}, extra...)...), &out))
		return out.ChainID
	}

	withFile := func(t *testing.T) string {
		home := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(home, "config", "app.toml"), []byte("chain_id = \"file-chain\"\n"), 0o600))
		return home
	}

	t.Run("default", func(t *testing.T) {
		require.Equal(t, "payment-oracle-1", chainID(t, t.TempDir()))
	})
	t.Run("file", func(t *testing.T) {
		require.Equal(t, "file-chain", chainID(t, withFile(t)))
	})
	t.Run("env over file", func(t *testing.T) {
		t.Setenv("PAYMENT_ORACLE_CHAIN_ID", "env-chain")
		require.Equal(t, "env-chain", chainID(t, withFile(t)))
	})
	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("PAYMENT_ORACLE_CHAIN_ID", "env-chain")
		require.Equal(t, "flag-chain", chainID(t, withFile(t), "--chain-id", "flag-chain"))
	})
}

func TestDecodeMsgs(t *testing.T) {
	msgs, err := cmd.DecodeMsgs([]byte(`[
		{"type": "oracle/MsgAddOracle", "value": {"owner": "a", "oracle": "b"}},
		{"type": "multisig/MsgExecuteCommand", "value": {"executor": "a", "command_id": "c"}}
	]`))
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "b", msgs[0].(*oracletypes.MsgAddOracle).Oracle)

	_, err = cmd.DecodeMsgs([]byte(`[{"type": "bank/MsgSend", "value": {}}]`))
	require.ErrorContains(t, err, "unknown type")

	_, err = cmd.DecodeMsgs([]byte(`[]`))
	require.Error(t, err)

	require.Contains(t, cmd.MsgTypes(), "oracle/MsgSubmitConfirmation")
}
