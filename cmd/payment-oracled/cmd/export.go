package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/payment-oracle/cosmos/app"
)

// ExportCmd prints the genesis of the last committed state. The output can
// seed a new chain through init's genesis file.
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export state to genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := openInitialisedApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			now := time.Now().UTC()
			state, err := a.ExportGenesis(now)
			if err != nil {
				return err
			}
			return printJSON(cmd, app.GenesisDoc{
				ChainID:     cfg.ChainID,
				GenesisTime: now,
				AppState:    state,
			})
		},
	}
}
