package multisig_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/payment-oracle/cosmos/testutil"
	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/multisig"
	"github.com/payment-oracle/cosmos/x/multisig/types"
)

func TestValidateGenesis(t *testing.T) {
	require.NoError(t, multisig.ValidateGenesis(multisig.DefaultGenesisState()))

	recipient := testutil.AccAddress(500)
	command := commontypes.MintCommand{
		CommandID: types.CommandID("nft", recipient, 1, "tx-1"),
		Contract:  "nft",
		Recipient: recipient,
		Tier:      1,
		OriginTx:  "tx-1",
		Status:    commontypes.CommandStatusPending,
	}
	require.NoError(t, multisig.ValidateGenesis(&multisig.GenesisState{MintCommands: []commontypes.MintCommand{command}}))

	testCases := []struct {
		name   string
		mutate func(cmd *commontypes.MintCommand)
	}{
		{"empty id", func(cmd *commontypes.MintCommand) { cmd.CommandID = "" }},
		{"id does not match payload", func(cmd *commontypes.MintCommand) { cmd.Tier = 2 }},
		{"short signature", func(cmd *commontypes.MintCommand) {
			cmd.Signatures = []commontypes.CommandSignature{{Signer: recipient, Signature: make([]byte, 64)}}
		}},
		{"signed twice", func(cmd *commontypes.MintCommand) {
			sig := commontypes.CommandSignature{Signer: recipient, Signature: make([]byte, 65)}
			cmd.Signatures = []commontypes.CommandSignature{sig, sig}
		}},
		{"signed without signatures", func(cmd *commontypes.MintCommand) { cmd.Status = commontypes.CommandStatusSigned }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := command
			tc.mutate(&cmd)
			require.Error(t, multisig.ValidateGenesis(&multisig.GenesisState{MintCommands: []commontypes.MintCommand{cmd}}))
		})
	}

	duplicated := &multisig.GenesisState{MintCommands: []commontypes.MintCommand{command, command}}
	require.Error(t, multisig.ValidateGenesis(duplicated))
}

func TestGenesisRoundTrip(t *testing.T) {
	keepers := testutil.SetupKeepers(t)
	ctx := keepers.Ctx
	oracles := testutil.NewOracleAccounts(t, 2)
	testutil.InitRegistry(t, ctx, keepers.Oracle, testutil.AccAddress(0), testutil.Addresses(oracles), 1)

	command, err := keepers.Multisig.GenerateMintCommand(ctx, "nft", testutil.AccAddress(500), 1, "tx-1")
	require.NoError(t, err)
	sig := oracles[0].Sign(t, types.CommandHash(command))
	require.NoError(t, keepers.Multisig.AddSignatureToCommand(ctx, command.CommandID, oracles[0].Address, sig))
	_, err = keepers.Multisig.GenerateMintCommand(ctx, "nft", testutil.AccAddress(501), 2, "tx-2")
	require.NoError(t, err)

	exported := multisig.ExportGenesis(ctx, *keepers.Multisig)
	require.NoError(t, multisig.ValidateGenesis(exported))
	require.Len(t, exported.MintCommands, 2)

	bz, err := json.Marshal(exported)
	require.NoError(t, err)
	var imported multisig.GenesisState
	require.NoError(t, json.Unmarshal(bz, &imported))

	fresh := testutil.SetupKeepers(t)
	require.NoError(t, multisig.InitGenesis(fresh.Ctx, *fresh.Multisig, &imported))

	signed, found := fresh.Multisig.GetCommand(fresh.Ctx, command.CommandID)
	require.True(t, found)
	require.Equal(t, commontypes.CommandStatusSigned, signed.Status)
	require.Len(t, signed.Signatures, 1)
	require.Equal(t, []byte(sig), []byte(signed.Signatures[0].Signature))

	require.Len(t, fresh.Multisig.GetCommandsByStatus(fresh.Ctx, commontypes.CommandStatusPending), 1)

	// imported commands cannot be generated again
	_, err = fresh.Multisig.GenerateMintCommand(fresh.Ctx, "nft", testutil.AccAddress(500), 1, "tx-1")
	require.ErrorIs(t, err, types.ErrDuplicateCommand)
}
