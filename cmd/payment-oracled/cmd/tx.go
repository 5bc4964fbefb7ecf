package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/app"
	multisigtypes "github.com/payment-oracle/cosmos/x/multisig/types"
	oracletypes "github.com/payment-oracle/cosmos/x/oracle/types"
	rewardstypes "github.com/payment-oracle/cosmos/x/rewards/types"
)

const flagBlockTime = "block-time"

// msgFactories maps the amino name of every deliverable message to a
// constructor of its zero value
var msgFactories = map[string]func() sdk.Msg{
	"oracle/MsgSubmitConfirmation":       func() sdk.Msg { return &oracletypes.MsgSubmitConfirmation{} },
	"oracle/MsgAddOracle":                func() sdk.Msg { return &oracletypes.MsgAddOracle{} },
	"oracle/MsgRemoveOracle":             func() sdk.Msg { return &oracletypes.MsgRemoveOracle{} },
	"oracle/MsgSetRequiredConfirmations": func() sdk.Msg { return &oracletypes.MsgSetRequiredConfirmations{} },
	"oracle/MsgSetActiveStatus":          func() sdk.Msg { return &oracletypes.MsgSetActiveStatus{} },
	"oracle/MsgSetContractAddress":       func() sdk.Msg { return &oracletypes.MsgSetContractAddress{} },
	"oracle/MsgUpdateParams":             func() sdk.Msg { return &oracletypes.MsgUpdateParams{} },
	"oracle/MsgRetryDispatch":            func() sdk.Msg { return &oracletypes.MsgRetryDispatch{} },
	"oracle/MsgTransferOwnership":        func() sdk.Msg { return &oracletypes.MsgTransferOwnership{} },
	"rewards/MsgBurnCredit":              func() sdk.Msg { return &rewardstypes.MsgBurnCredit{} },
	"rewards/MsgTransferCredit":          func() sdk.Msg { return &rewardstypes.MsgTransferCredit{} },
	"multisig/MsgSignCommand":            func() sdk.Msg { return &multisigtypes.MsgSignCommand{} },
	"multisig/MsgExecuteCommand":         func() sdk.Msg { return &multisigtypes.MsgExecuteCommand{} },
}

// MsgTypes returns the message type names tx accepts
func MsgTypes() []string {
	names := make([]string, 0, len(msgFactories))
	for name := range msgFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// msgEnvelope is one message in a tx file
type msgEnvelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// DecodeMsgs parses a JSON array of {"type", "value"} envelopes
func DecodeMsgs(bz []byte) ([]sdk.Msg, error) {
	var envelopes []msgEnvelope
	if err := json.Unmarshal(bz, &envelopes); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	if len(envelopes) == 0 {
		return nil, fmt.Errorf("no messages to deliver")
	}

	msgs := make([]sdk.Msg, 0, len(envelopes))
	for i, env := range envelopes {
		factory, ok := msgFactories[env.Type]
		if !ok {
			return nil, fmt.Errorf("message %d: unknown type %q", i, env.Type)
		}
		msg := factory()
		if err := json.Unmarshal(env.Value, msg); err != nil {
			return nil, fmt.Errorf("message %d (%s): %w", i, env.Type, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// TxCmd delivers the messages of a JSON file in a new block and commits it.
// Each message succeeds or fails on its own.
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx [file]",
		Short: "Deliver messages from a JSON file (- for stdin) in one block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}

			bz, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			msgs, err := DecodeMsgs(bz)
			if err != nil {
				return err
			}

			blockTime, err := blockTimeFlag(cmd)
			if err != nil {
				return err
			}

			a, err := openInitialisedApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.BeginBlock(blockTime); err != nil {
				return err
			}
			results := make([]app.TxResult, 0, len(msgs))
			for _, msg := range msgs {
				results = append(results, a.DeliverMsg(msg))
			}
			commitID, err := a.Commit()
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]interface{}{
				"height":  commitID.Version,
				"results": results,
			})
		},
	}

	cmd.Flags().String(flagBlockTime, "", "block time in RFC3339 (defaults to now)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func blockTimeFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(flagBlockTime)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid block time: %w", err)
	}
	return t, nil
}
