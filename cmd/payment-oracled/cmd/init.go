package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/payment-oracle/cosmos/app"
	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle"
	oracletypes "github.com/payment-oracle/cosmos/x/oracle/types"
)

const (
	flagOracles     = "oracles"
	flagRequired    = "required"
	flagContracts   = "contracts"
	flagGenesisTime = "genesis-time"
	flagTimeout     = "confirmation-timeout"
	flagBestEffort  = "best-effort"
)

// InitCmd writes app.toml and genesis.json under the home directory and
// commits the genesis state as the first version.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [owner]",
		Short: "Initialise the node home and chain state",
		Long: `Initialise writes the node configuration and a genesis file carrying the oracle
registry, then initialises the chain from it. Without an owner the registry is
left uninitialised.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}

			genesis, err := oracleGenesisFromFlags(cmd, args)
			if err != nil {
				return err
			}
			if err := oracle.ValidateGenesis(genesis); err != nil {
				return err
			}

			genesisTime := time.Now().UTC()
			if raw, _ := cmd.Flags().GetString(flagGenesisTime); raw != "" {
				if genesisTime, err = time.Parse(time.RFC3339, raw); err != nil {
					return fmt.Errorf("invalid genesis time: %w", err)
				}
			}

			if _, err := os.Stat(cfg.GenesisFile()); err == nil {
				return fmt.Errorf("genesis file %s already exists", cfg.GenesisFile())
			}
			if err := writeConfig(cfg); err != nil {
				return err
			}

			bz, err := json.Marshal(genesis)
			if err != nil {
				return err
			}
			doc := app.GenesisDoc{
				ChainID:     cfg.ChainID,
				GenesisTime: genesisTime,
				AppState:    app.GenesisState{oracletypes.ModuleName: bz},
			}
			if err := app.WriteGenesisDoc(cfg.GenesisFile(), doc); err != nil {
				return err
			}

			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			commitID, err := a.InitChain(doc.AppState, doc.GenesisTime)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"chain_id": cfg.ChainID,
				"height":   commitID.Version,
				"genesis":  cfg.GenesisFile(),
			})
		},
	}

	cmd.Flags().StringSlice(flagOracles, nil, "oracle account addresses")
	cmd.Flags().Uint32(flagRequired, 1, "confirmations required to reach consensus")
	cmd.Flags().StringToString(flagContracts, nil, "downstream contract addresses as name=address")
	cmd.Flags().String(flagGenesisTime, "", "genesis time in RFC3339 (defaults to now)")
	cmd.Flags().Uint64(flagTimeout, oracletypes.DefaultConfirmationTimeout, "seconds before a pending payment expires")
	cmd.Flags().Bool(flagBestEffort, false, "keep confirmed payments when dispatch fails")

	return cmd
}

func oracleGenesisFromFlags(cmd *cobra.Command, args []string) (*oracle.GenesisState, error) {
	genesis := oracle.DefaultGenesisState()

	timeout, _ := cmd.Flags().GetUint64(flagTimeout)
	bestEffort, _ := cmd.Flags().GetBool(flagBestEffort)
	genesis.Params.ConfirmationTimeout = timeout
	genesis.Params.AtomicDispatch = !bestEffort

	contracts, _ := cmd.Flags().GetStringToString(flagContracts)
	for name, address := range contracts {
		genesis.Contracts = append(genesis.Contracts, commontypes.ContractAddress{Name: name, Address: address})
	}
	sort.Slice(genesis.Contracts, func(i, j int) bool { return genesis.Contracts[i].Name < genesis.Contracts[j].Name })

	if len(args) == 0 {
		return genesis, nil
	}

	oracles, _ := cmd.Flags().GetStringSlice(flagOracles)
	oracles = append([]string{}, oracles...)
	sort.Strings(oracles)
	required, _ := cmd.Flags().GetUint32(flagRequired)
	if len(oracles) == 0 {
		required = 0
	}

	genesis.OracleSet = commontypes.OracleSet{
		Oracles:               oracles,
		RequiredConfirmations: required,
		IsActive:              true,
		Owner:                 args[0],
		Version:               1,
	}
	return genesis, nil
}
