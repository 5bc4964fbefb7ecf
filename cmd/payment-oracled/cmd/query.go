package cmd

import (
	"time"

	"github.com/spf13/cobra"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/app"
	multisigkeeper "github.com/payment-oracle/cosmos/x/multisig/keeper"
	multisigtypes "github.com/payment-oracle/cosmos/x/multisig/types"
	oraclekeeper "github.com/payment-oracle/cosmos/x/oracle/keeper"
	oracletypes "github.com/payment-oracle/cosmos/x/oracle/types"
	rewardskeeper "github.com/payment-oracle/cosmos/x/rewards/keeper"
	rewardstypes "github.com/payment-oracle/cosmos/x/rewards/types"
)

const (
	flagStatus    = "status"
	flagID        = "id"
	flagTxID      = "tx-id"
	flagEventType = "event-type"
	flagSince     = "since"
	flagUntil     = "until"
)

// queryFunc answers a query against the last committed state
type queryFunc func(ctx sdk.Context, a *app.App, cmd *cobra.Command, args []string) (interface{}, error)

// QueryCmd groups the read-only commands over the last committed state
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query the last committed state",
	}

	paymentsCmd := newQueryCmd("payments", "List payment records, optionally by status", cobra.NoArgs,
		func(ctx sdk.Context, a *app.App, cmd *cobra.Command, _ []string) (interface{}, error) {
			status, _ := cmd.Flags().GetString(flagStatus)
			return oraclekeeper.NewQuerier(*a.OracleKeeper).Payments(ctx, &oracletypes.QueryPaymentsRequest{Status: status})
		})
	paymentsCmd.Flags().String(flagStatus, "", "pending, confirmed, rejected or expired")

	auditCmd := newQueryCmd("audit-logs", "List audit logs by id, tx id, event type or time range", cobra.NoArgs,
		func(ctx sdk.Context, a *app.App, cmd *cobra.Command, _ []string) (interface{}, error) {
			req := &oracletypes.QueryAuditLogsRequest{}
			req.ID, _ = cmd.Flags().GetUint64(flagID)
			req.TxID, _ = cmd.Flags().GetString(flagTxID)
			req.EventType, _ = cmd.Flags().GetString(flagEventType)
			req.Since, _ = cmd.Flags().GetInt64(flagSince)
			req.Until, _ = cmd.Flags().GetInt64(flagUntil)
			return oraclekeeper.NewQuerier(*a.OracleKeeper).AuditLogs(ctx, req)
		})
	auditCmd.Flags().Uint64(flagID, 0, "audit log id")
	auditCmd.Flags().String(flagTxID, "", "payment tx id")
	auditCmd.Flags().String(flagEventType, "", "event type such as payment_confirmed")
	auditCmd.Flags().Int64(flagSince, 0, "unix time lower bound")
	auditCmd.Flags().Int64(flagUntil, 0, "unix time upper bound (defaults to now)")

	commandsCmd := newQueryCmd("commands", "List mint commands, optionally by status", cobra.NoArgs,
		func(ctx sdk.Context, a *app.App, cmd *cobra.Command, _ []string) (interface{}, error) {
			status, _ := cmd.Flags().GetString(flagStatus)
			return multisigkeeper.NewQuerier(*a.MultisigKeeper).Commands(ctx, &multisigtypes.QueryCommandsRequest{Status: status})
		})
	commandsCmd.Flags().String(flagStatus, "", "pending, signed or executed")

	cmd.AddCommand(
		newQueryCmd("payment [tx-id]", "Show a payment record", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, args []string) (interface{}, error) {
				return oraclekeeper.NewQuerier(*a.OracleKeeper).PendingPayment(ctx, &oracletypes.QueryPendingPaymentRequest{TxID: args[0]})
			}),
		paymentsCmd,
		newQueryCmd("oracle-set", "Show the oracle registry", cobra.NoArgs,
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, _ []string) (interface{}, error) {
				return oraclekeeper.NewQuerier(*a.OracleKeeper).OracleSet(ctx, &oracletypes.QueryOracleSetRequest{})
			}),
		newQueryCmd("is-oracle [account]", "Report whether an account is a registered oracle", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, args []string) (interface{}, error) {
				return oraclekeeper.NewQuerier(*a.OracleKeeper).IsOracle(ctx, &oracletypes.QueryIsOracleRequest{Account: args[0]})
			}),
		newQueryCmd("contracts", "List downstream contract addresses", cobra.NoArgs,
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, _ []string) (interface{}, error) {
				return oraclekeeper.NewQuerier(*a.OracleKeeper).ContractAddresses(ctx, &oracletypes.QueryContractAddressesRequest{})
			}),
		newQueryCmd("params", "Show the oracle parameters", cobra.NoArgs,
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, _ []string) (interface{}, error) {
				return oraclekeeper.NewQuerier(*a.OracleKeeper).Params(ctx, &oracletypes.QueryParamsRequest{})
			}),
		auditCmd,
		newQueryCmd("command [command-id]", "Show a mint command and its signing digest", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, args []string) (interface{}, error) {
				return multisigkeeper.NewQuerier(*a.MultisigKeeper).Command(ctx, &multisigtypes.QueryCommandRequest{CommandID: args[0]})
			}),
		commandsCmd,
		newQueryCmd("balances [holder]", "List the credit balances of a holder", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, args []string) (interface{}, error) {
				return rewardskeeper.NewQuerier(*a.RewardsKeeper).Balances(ctx, &rewardstypes.QueryBalancesRequest{Holder: args[0]})
			}),
		newQueryCmd("supply [denom]", "Show the outstanding supply of a denom", cobra.ExactArgs(1),
			func(ctx sdk.Context, a *app.App, _ *cobra.Command, args []string) (interface{}, error) {
				return rewardskeeper.NewQuerier(*a.RewardsKeeper).Supply(ctx, &rewardstypes.QuerySupplyRequest{Denom: args[0]})
			}),
	)

	return cmd
}

func newQueryCmd(use, short string, args cobra.PositionalArgs, query queryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := openInitialisedApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := query(a.QueryContext(time.Now().UTC()), a, cmd, args)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}
