package cmd

import (
	"encoding/json"
	"sync"

	"github.com/spf13/cobra"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/app"
)

var sealConfig sync.Once

// NewRootCmd creates a new root command for payment-oracled. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	sealConfig.Do(func() {
		// Set config for prefixes
		config := sdk.GetConfig()
		config.SetBech32PrefixForAccount(app.AccountAddressPrefix, app.AccountAddressPrefix+"pub")
		config.SetBech32PrefixForValidator(app.AccountAddressPrefix+"valoper", app.AccountAddressPrefix+"valoperpub")
		config.SetBech32PrefixForConsensusNode(app.AccountAddressPrefix+"valcons", app.AccountAddressPrefix+"valconspub")
		config.Seal()
	})

	rootCmd := &cobra.Command{
		Use:   "payment-oracled",
		Short: "Payment oracle consensus daemon",
		Long: `Payment oracle consensus is a state machine built using Cosmos SDK.
Registered oracles attest to off-chain payments; once enough of them agree the
payment is confirmed and its action is dispatched to the rewards and NFT modules.`,
		SilenceUsage: true,
	}
	addConfigFlags(rootCmd)

	rootCmd.AddCommand(
		InitCmd(),
		TxCmd(),
		QueryCmd(),
		ExportCmd(),
	)

	return rootCmd
}

// printJSON writes v to the command output as indented JSON
func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(bz, '\n'))
	return err
}
