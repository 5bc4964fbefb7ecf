package keeper_test

import (
	"testing"

	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/payment-oracle/cosmos/testutil"
	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/multisig/keeper"
	"github.com/payment-oracle/cosmos/x/multisig/types"
)

const nftContract = "nft-contract"

type MultisigTestSuite struct {
	suite.Suite
	ctx     sdk.Context
	keepers testutil.Keepers
	owner   string
	oracles []testutil.OracleAccount
}

func TestMultisigTestSuite(t *testing.T) {
	suite.Run(t, new(MultisigTestSuite))
}

// 3 oracles, 2 signatures required
func (suite *MultisigTestSuite) SetupTest() {
	suite.keepers = testutil.SetupKeepers(suite.T())
	suite.ctx = suite.keepers.Ctx
	suite.owner = testutil.AccAddress(0)
	suite.oracles = testutil.NewOracleAccounts(suite.T(), 3)
	testutil.InitRegistry(suite.T(), suite.ctx, suite.keepers.Oracle, suite.owner, testutil.Addresses(suite.oracles), 2)
}

func (suite *MultisigTestSuite) generate(originTx string) commontypes.MintCommand {
	command, err := suite.keepers.Multisig.GenerateMintCommand(suite.ctx, nftContract, testutil.AccAddress(500), 2, originTx)
	suite.Require().NoError(err)
	return command
}

func (suite *MultisigTestSuite) sign(command commontypes.MintCommand, signer testutil.OracleAccount) error {
	sig := signer.Sign(suite.T(), types.CommandHash(command))
	return suite.keepers.Multisig.AddSignatureToCommand(suite.ctx, command.CommandID, signer.Address, sig)
}

func (suite *MultisigTestSuite) TestGenerateMintCommand() {
	k := suite.keepers.Multisig
	recipient := testutil.AccAddress(500)

	command := suite.generate("tx-1")
	suite.Require().Equal(types.CommandID(nftContract, recipient, 2, "tx-1"), command.CommandID)
	suite.Require().Equal(commontypes.CommandStatusPending, command.Status)
	suite.Require().Empty(command.Signatures)
	suite.Require().Equal(testutil.GenesisTime.Unix(), command.CreatedAt)

	stored, found := k.GetCommand(suite.ctx, command.CommandID)
	suite.Require().True(found)
	suite.Require().Equal(command.CommandID, stored.CommandID)

	_, err := k.GenerateMintCommand(suite.ctx, nftContract, recipient, 2, "tx-1")
	suite.Require().ErrorIs(err, types.ErrDuplicateCommand)

	_, err = k.GenerateMintCommand(suite.ctx, nftContract, "bad-recipient", 2, "tx-2")
	suite.Require().ErrorIs(err, types.ErrInvalidCommand)

	_, err = k.GenerateMintCommand(suite.ctx, "", recipient, 2, "tx-2")
	suite.Require().ErrorIs(err, types.ErrInvalidCommand)

	// a different tier is a different command
	other, err := k.GenerateMintCommand(suite.ctx, nftContract, recipient, 3, "tx-1")
	suite.Require().NoError(err)
	suite.Require().NotEqual(command.CommandID, other.CommandID)
}

func (suite *MultisigTestSuite) TestThresholdSigning() {
	k := suite.keepers.Multisig
	command := suite.generate("tx-1")

	suite.Require().NoError(suite.sign(command, suite.oracles[0]))
	stored, _ := k.GetCommand(suite.ctx, command.CommandID)
	suite.Require().Equal(commontypes.CommandStatusPending, stored.Status)
	suite.Require().Len(stored.Signatures, 1)
	suite.Require().Equal(suite.oracles[0].Address, stored.Signatures[0].Signer)

	suite.Require().NoError(suite.sign(command, suite.oracles[1]))
	stored, _ = k.GetCommand(suite.ctx, command.CommandID)
	suite.Require().Equal(commontypes.CommandStatusSigned, stored.Status)

	// a signed command takes no more signatures
	err := suite.sign(command, suite.oracles[2])
	suite.Require().ErrorIs(err, types.ErrInvalidCommandStatus)

	logs := suite.keepers.Oracle.GetAuditLogsByEventType(suite.ctx, commontypes.AuditMintCommandSigned)
	suite.Require().Len(logs, 1)
	suite.Require().Equal("tx-1", logs[0].TxID)
}

func (suite *MultisigTestSuite) TestSignatureChecks() {
	k := suite.keepers.Multisig
	command := suite.generate("tx-1")

	err := k.AddSignatureToCommand(suite.ctx, "cmd-missing", suite.oracles[0].Address, make([]byte, 65))
	suite.Require().ErrorIs(err, types.ErrCommandNotFound)

	outsider := testutil.NewOracleAccount(suite.T())
	err = suite.sign(command, outsider)
	suite.Require().ErrorIs(err, types.ErrUnauthorizedSigner)

	// oracle 1 signs with oracle 0's key
	sig := suite.oracles[0].Sign(suite.T(), types.CommandHash(command))
	err = k.AddSignatureToCommand(suite.ctx, command.CommandID, suite.oracles[1].Address, sig)
	suite.Require().ErrorIs(err, types.ErrInvalidSignature)

	err = k.AddSignatureToCommand(suite.ctx, command.CommandID, suite.oracles[0].Address, sig[:64])
	suite.Require().ErrorIs(err, types.ErrInvalidSignature)

	// signature over some other digest
	wrong := suite.oracles[0].Sign(suite.T(), types.CommandHash(suite.generate("tx-2")))
	err = k.AddSignatureToCommand(suite.ctx, command.CommandID, suite.oracles[0].Address, wrong)
	suite.Require().ErrorIs(err, types.ErrInvalidSignature)

	suite.Require().NoError(k.AddSignatureToCommand(suite.ctx, command.CommandID, suite.oracles[0].Address, sig))
	err = k.AddSignatureToCommand(suite.ctx, command.CommandID, suite.oracles[0].Address, sig)
	suite.Require().ErrorIs(err, types.ErrDuplicateSignature)

	stored, _ := k.GetCommand(suite.ctx, command.CommandID)
	suite.Require().Len(stored.Signatures, 1)
}

func (suite *MultisigTestSuite) TestLegacyRecoveryID() {
	command := suite.generate("tx-1")

	sig := suite.oracles[0].Sign(suite.T(), types.CommandHash(command))
	sig[64] += 27

	err := suite.keepers.Multisig.AddSignatureToCommand(suite.ctx, command.CommandID, suite.oracles[0].Address, sig)
	suite.Require().NoError(err)
}

func (suite *MultisigTestSuite) TestRemovedSignerStillCounts() {
	k := suite.keepers.Multisig
	command := suite.generate("tx-1")

	suite.Require().NoError(suite.sign(command, suite.oracles[0]))
	_, err := suite.keepers.Oracle.RemoveOracle(suite.ctx, suite.owner, suite.oracles[0].Address)
	suite.Require().NoError(err)

	// signatures collected before the removal stay valid
	suite.Require().NoError(suite.sign(command, suite.oracles[1]))
	stored, _ := k.GetCommand(suite.ctx, command.CommandID)
	suite.Require().Equal(commontypes.CommandStatusSigned, stored.Status)
	suite.Require().Len(stored.Signatures, 2)

	// the removed oracle can no longer sign anything new
	other := suite.generate("tx-2")
	err = suite.sign(other, suite.oracles[0])
	suite.Require().ErrorIs(err, types.ErrUnauthorizedSigner)
}

func (suite *MultisigTestSuite) TestExecuteCommand() {
	k := suite.keepers.Multisig
	command := suite.generate("tx-1")

	err := k.MarkCommandExecuted(suite.ctx, command.CommandID, suite.oracles[0].Address)
	suite.Require().ErrorIs(err, types.ErrInvalidCommandStatus)

	suite.Require().NoError(suite.sign(command, suite.oracles[0]))
	suite.Require().NoError(suite.sign(command, suite.oracles[1]))

	err = k.MarkCommandExecuted(suite.ctx, command.CommandID, suite.owner)
	suite.Require().ErrorIs(err, types.ErrUnauthorizedSigner)

	suite.Require().NoError(k.MarkCommandExecuted(suite.ctx, command.CommandID, suite.oracles[2].Address))
	err = k.MarkCommandExecuted(suite.ctx, command.CommandID, suite.oracles[2].Address)
	suite.Require().ErrorIs(err, types.ErrInvalidCommandStatus)

	suite.Require().Empty(k.GetCommandsByStatus(suite.ctx, commontypes.CommandStatusSigned))
	executed := k.GetCommandsByStatus(suite.ctx, commontypes.CommandStatusExecuted)
	suite.Require().Len(executed, 1)
	suite.Require().Equal(command.CommandID, executed[0].CommandID)
}

func (suite *MultisigTestSuite) TestMsgServerAndQueries() {
	msgServer := keeper.NewMsgServerImpl(*suite.keepers.Multisig)
	querier := keeper.NewQuerier(*suite.keepers.Multisig)
	command := suite.generate("tx-1")
	suite.generate("tx-2")

	commandResp, err := querier.Command(suite.ctx, &types.QueryCommandRequest{CommandID: command.CommandID})
	suite.Require().NoError(err)
	suite.Require().Equal(command.CommandID, commandResp.Command.CommandID)

	// oracles sign the digest the query hands out
	hash, err := hexutil.Decode(commandResp.Hash)
	suite.Require().NoError(err)

	for i, oracle := range suite.oracles[:2] {
		resp, err := msgServer.SignCommand(suite.ctx, types.NewMsgSignCommand(oracle.Address, command.CommandID, oracle.Sign(suite.T(), hash)))
		suite.Require().NoError(err)
		suite.Require().Equal(i+1, resp.SignatureCount)
		suite.Require().Equal(i == 1, resp.ThresholdMet)
	}

	_, err = msgServer.ExecuteCommand(suite.ctx, types.NewMsgExecuteCommand(suite.oracles[0].Address, command.CommandID))
	suite.Require().NoError(err)

	listResp, err := querier.Commands(suite.ctx, &types.QueryCommandsRequest{Status: "pending"})
	suite.Require().NoError(err)
	suite.Require().Len(listResp.Commands, 1)
	suite.Require().Equal("tx-2", listResp.Commands[0].OriginTx)

	listResp, err = querier.Commands(suite.ctx, &types.QueryCommandsRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(listResp.Commands, 2)

	_, err = querier.Commands(suite.ctx, &types.QueryCommandsRequest{Status: "burned"})
	suite.Require().Error(err)

	_, err = querier.Command(suite.ctx, &types.QueryCommandRequest{CommandID: "cmd-missing"})
	suite.Require().ErrorIs(err, types.ErrCommandNotFound)
}

// **Feature: payment-oracle-consensus, Property 7: command signature threshold**
func TestProperty_CommandSignedExactlyAtThreshold(t *testing.T) {
	properties := testutil.NewPropertyTester(t)

	properties.Property("a command is signed once the threshold is met", prop.ForAll(
		func(oracleCount int, required int, tier uint32) bool {
			if required > oracleCount {
				required = oracleCount
			}
			keepers := testutil.SetupKeepers(t)
			ctx := keepers.Ctx
			oracles := testutil.NewOracleAccounts(t, oracleCount)
			testutil.InitRegistry(t, ctx, keepers.Oracle, testutil.AccAddress(0), testutil.Addresses(oracles), uint32(required))

			command, err := keepers.Multisig.GenerateMintCommand(ctx, nftContract, testutil.AccAddress(500), tier, "tx-prop")
			if err != nil {
				return false
			}
			hash := types.CommandHash(command)

			for i, oracle := range oracles[:required] {
				if err := keepers.Multisig.AddSignatureToCommand(ctx, command.CommandID, oracle.Address, oracle.Sign(t, hash)); err != nil {
					return false
				}
				stored, _ := keepers.Multisig.GetCommand(ctx, command.CommandID)
				signed := stored.Status == commontypes.CommandStatusSigned
				if signed != (i == required-1) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 5),
		gen.IntRange(1, 5),
		gen.UInt32Range(1, 10),
	))

	properties.TestingRun(t)
}

func TestRecoverSigner(t *testing.T) {
	account := testutil.NewOracleAccount(t)
	hash := types.CommandHash(commontypes.MintCommand{CommandID: "cmd-1", Recipient: account.Address})

	recovered, err := types.RecoverSigner(hash, account.Sign(t, hash))
	require.NoError(t, err)
	require.Equal(t, account.Address, recovered.String())

	_, err = types.RecoverSigner(hash, make([]byte, 65))
	require.Error(t, err)
}
