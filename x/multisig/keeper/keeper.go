package keeper

import (
	"fmt"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common/hexutil"

	commontypes "github.com/payment-oracle/cosmos/types"
	multisigtypes "github.com/payment-oracle/cosmos/x/multisig/types"
)

// Keeper of the multisig store
type Keeper struct {
	storeKey storetypes.StoreKey

	oracleKeeper commontypes.OracleKeeper
}

var _ commontypes.MultisigKeeper = Keeper{}

// NewKeeper creates a new multisig Keeper instance
func NewKeeper(storeKey storetypes.StoreKey) *Keeper {
	return &Keeper{
		storeKey: storeKey,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", multisigtypes.ModuleName))
}

// SetOracleKeeper sets the oracle keeper that owns the signer registry
func (k *Keeper) SetOracleKeeper(oracleKeeper commontypes.OracleKeeper) {
	k.oracleKeeper = oracleKeeper
}

// GenerateMintCommand generates a new mint command
func (k Keeper) GenerateMintCommand(ctx sdk.Context, contract, recipient string, tier uint32, originTx string) (commontypes.MintCommand, error) {
	if contract == "" || originTx == "" {
		return commontypes.MintCommand{}, errorsmod.Wrap(multisigtypes.ErrInvalidCommand, "contract and origin tx are required")
	}
	if err := commontypes.ValidateAddress(recipient); err != nil {
		return commontypes.MintCommand{}, errorsmod.Wrap(multisigtypes.ErrInvalidCommand, err.Error())
	}

	commandID := multisigtypes.CommandID(contract, recipient, tier, originTx)
	if _, found := k.GetCommand(ctx, commandID); found {
		return commontypes.MintCommand{}, errorsmod.Wrapf(multisigtypes.ErrDuplicateCommand, "%s", commandID)
	}

	command := commontypes.MintCommand{
		CommandID:  commandID,
		Contract:   contract,
		Recipient:  recipient,
		Tier:       tier,
		OriginTx:   originTx,
		Signatures: []commontypes.CommandSignature{},
		CreatedAt:  ctx.BlockTime().Unix(),
		Status:     commontypes.CommandStatusPending,
	}

	if err := k.setMintCommand(ctx, command); err != nil {
		return commontypes.MintCommand{}, err
	}

	// Emit mint command generated event
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			multisigtypes.EventTypeMintCommandGenerated,
			sdk.NewAttribute(multisigtypes.AttributeKeyCommandID, commandID),
			sdk.NewAttribute(multisigtypes.AttributeKeyContract, contract),
			sdk.NewAttribute(multisigtypes.AttributeKeyRecipient, recipient),
			sdk.NewAttribute(multisigtypes.AttributeKeyTier, strconv.FormatUint(uint64(tier), 10)),
			sdk.NewAttribute(multisigtypes.AttributeKeyOriginTx, originTx),
		),
	)
	k.Logger(ctx).Info("mint command generated", "command_id", commandID, "recipient", recipient, "tier", tier)

	return command, nil
}

// AddSignatureToCommand adds an oracle's signature to a pending mint command.
// The signature must recover to the signer's account over CommandHash.
func (k Keeper) AddSignatureToCommand(ctx sdk.Context, commandID, signer string, signature []byte) error {
	command, found := k.GetCommand(ctx, commandID)
	if !found {
		return errorsmod.Wrapf(multisigtypes.ErrCommandNotFound, "%s", commandID)
	}

	if !k.isOracle(ctx, signer) {
		return errorsmod.Wrapf(multisigtypes.ErrUnauthorizedSigner, "%s", signer)
	}

	if command.Status != commontypes.CommandStatusPending {
		return errorsmod.Wrapf(multisigtypes.ErrInvalidCommandStatus, "command %s is %s", commandID, command.Status)
	}

	// Check if oracle already signed
	if command.HasSigned(signer) {
		return errorsmod.Wrapf(multisigtypes.ErrDuplicateSignature, "%s already signed %s", signer, commandID)
	}

	recovered, err := multisigtypes.RecoverSigner(multisigtypes.CommandHash(command), signature)
	if err != nil {
		return errorsmod.Wrap(multisigtypes.ErrInvalidSignature, err.Error())
	}
	if recovered.String() != signer {
		return errorsmod.Wrapf(multisigtypes.ErrInvalidSignature, "signature recovers to %s, not %s", recovered, signer)
	}

	command.Signatures = append(command.Signatures, commontypes.CommandSignature{
		Signer:    signer,
		Signature: hexutil.Bytes(signature),
		Timestamp: ctx.BlockTime().Unix(),
	})

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			multisigtypes.EventTypeCommandSigned,
			sdk.NewAttribute(multisigtypes.AttributeKeyCommandID, commandID),
			sdk.NewAttribute(multisigtypes.AttributeKeySigner, signer),
			sdk.NewAttribute(multisigtypes.AttributeKeySignatureCount, strconv.Itoa(len(command.Signatures))),
		),
	)

	// Check if threshold is reached
	threshold := k.Threshold(ctx)
	if uint32(len(command.Signatures)) >= threshold {
		command.Status = commontypes.CommandStatusSigned

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				multisigtypes.EventTypeThresholdReached,
				sdk.NewAttribute(multisigtypes.AttributeKeyCommandID, commandID),
				sdk.NewAttribute(multisigtypes.AttributeKeySignatureCount, strconv.Itoa(len(command.Signatures))),
				sdk.NewAttribute(multisigtypes.AttributeKeyThreshold, strconv.FormatUint(uint64(threshold), 10)),
			),
		)
		k.audit(ctx, command)
		k.Logger(ctx).Info("mint command signed", "command_id", commandID, "signatures", len(command.Signatures))
	}

	return k.setMintCommand(ctx, command)
}

// MarkCommandExecuted marks a signed command as executed. Only registered
// oracles may report execution.
func (k Keeper) MarkCommandExecuted(ctx sdk.Context, commandID, caller string) error {
	command, found := k.GetCommand(ctx, commandID)
	if !found {
		return errorsmod.Wrapf(multisigtypes.ErrCommandNotFound, "%s", commandID)
	}

	if !k.isOracle(ctx, caller) {
		return errorsmod.Wrapf(multisigtypes.ErrUnauthorizedSigner, "%s", caller)
	}

	if command.Status != commontypes.CommandStatusSigned {
		return errorsmod.Wrapf(multisigtypes.ErrInvalidCommandStatus, "command %s is %s", commandID, command.Status)
	}

	command.Status = commontypes.CommandStatusExecuted
	if err := k.setMintCommand(ctx, command); err != nil {
		return err
	}

	// Emit command executed event
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			multisigtypes.EventTypeCommandExecuted,
			sdk.NewAttribute(multisigtypes.AttributeKeyCommandID, commandID),
			sdk.NewAttribute(multisigtypes.AttributeKeyExecutor, caller),
		),
	)

	return nil
}

// Threshold returns the number of oracle signatures a command needs
func (k Keeper) Threshold(ctx sdk.Context) uint32 {
	if k.oracleKeeper == nil {
		return 1
	}
	if required := k.oracleKeeper.GetOracleSet(ctx).RequiredConfirmations; required > 0 {
		return required
	}
	return 1
}

// GetCommand retrieves a mint command by ID
func (k Keeper) GetCommand(ctx sdk.Context, commandID string) (commontypes.MintCommand, bool) {
	bz := ctx.KVStore(k.storeKey).Get(multisigtypes.GetMintCommandKey(commandID))
	if bz == nil {
		return commontypes.MintCommand{}, false
	}
	return mustUnmarshalCommand(bz), true
}

// GetAllCommands returns all mint commands in the store
func (k Keeper) GetAllCommands(ctx sdk.Context) []commontypes.MintCommand {
	iterator := storetypes.KVStorePrefixIterator(ctx.KVStore(k.storeKey), multisigtypes.MintCommandKeyPrefix)
	defer iterator.Close()

	commands := make([]commontypes.MintCommand, 0)
	for ; iterator.Valid(); iterator.Next() {
		commands = append(commands, mustUnmarshalCommand(iterator.Value()))
	}
	return commands
}

// GetCommandsByStatus returns commands in a status using the status index
func (k Keeper) GetCommandsByStatus(ctx sdk.Context, status commontypes.CommandStatus) []commontypes.MintCommand {
	prefix := multisigtypes.GetCommandStatusPrefix(uint8(status))
	iterator := storetypes.KVStorePrefixIterator(ctx.KVStore(k.storeKey), prefix)
	defer iterator.Close()

	commands := make([]commontypes.MintCommand, 0)
	for ; iterator.Valid(); iterator.Next() {
		commandID := string(iterator.Key()[len(prefix):])
		if command, found := k.GetCommand(ctx, commandID); found {
			commands = append(commands, command)
		}
	}
	return commands
}

// ImportCommand stores a genesis command as is
func (k Keeper) ImportCommand(ctx sdk.Context, command commontypes.MintCommand) error {
	if _, found := k.GetCommand(ctx, command.CommandID); found {
		return errorsmod.Wrapf(multisigtypes.ErrDuplicateCommand, "%s", command.CommandID)
	}
	return k.setMintCommand(ctx, command)
}

// Private helper methods

func (k Keeper) isOracle(ctx sdk.Context, account string) bool {
	return k.oracleKeeper != nil && k.oracleKeeper.IsOracle(ctx, account)
}

// setMintCommand writes the command and moves its status index entry
func (k Keeper) setMintCommand(ctx sdk.Context, command commontypes.MintCommand) error {
	store := ctx.KVStore(k.storeKey)

	if previous, found := k.GetCommand(ctx, command.CommandID); found && previous.Status != command.Status {
		store.Delete(multisigtypes.GetCommandStatusKey(uint8(previous.Status), command.CommandID))
	}

	bz, err := command.Marshal()
	if err != nil {
		return err
	}
	store.Set(multisigtypes.GetMintCommandKey(command.CommandID), bz)
	store.Set(multisigtypes.GetCommandStatusKey(uint8(command.Status), command.CommandID), []byte{})
	return nil
}

func (k Keeper) audit(ctx sdk.Context, command commontypes.MintCommand) {
	if k.oracleKeeper == nil {
		return
	}

	log := commontypes.AuditLog{
		EventType: commontypes.AuditMintCommandSigned,
		TxID:      command.OriginTx,
		Details: []commontypes.Attribute{
			{Key: "command_id", Value: command.CommandID},
			{Key: "recipient", Value: command.Recipient},
			{Key: "tier", Value: strconv.FormatUint(uint64(command.Tier), 10)},
			{Key: "signatures", Value: strconv.Itoa(len(command.Signatures))},
		},
	}
	if _, err := k.oracleKeeper.SaveAuditLog(ctx, log); err != nil {
		k.Logger(ctx).Error("failed to save audit log", "command_id", command.CommandID, "error", err)
	}
}

func mustUnmarshalCommand(bz []byte) commontypes.MintCommand {
	var command commontypes.MintCommand
	if err := command.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode mint command: %w", err))
	}
	return command
}
