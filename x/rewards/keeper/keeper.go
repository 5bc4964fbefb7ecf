package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/rewards/types"
)

// maxOriginTxLen bounds origin tx ids so they fit the one-byte length prefix
const maxOriginTxLen = commontypes.MaxTxIDLength

// Keeper of the rewards store
type Keeper struct {
	storeKey storetypes.StoreKey

	oracleKeeper types.OracleKeeper
}

var _ commontypes.RewardsKeeper = Keeper{}

// NewKeeper creates a new rewards Keeper instance
func NewKeeper(storeKey storetypes.StoreKey) *Keeper {
	return &Keeper{
		storeKey: storeKey,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// SetOracleKeeper sets the oracle keeper (to avoid circular dependency)
func (k *Keeper) SetOracleKeeper(oracleKeeper types.OracleKeeper) {
	k.oracleKeeper = oracleKeeper
}

// CreditStake credits a staking pool position to the beneficiary
func (k Keeper) CreditStake(ctx sdk.Context, contract, beneficiary, pool string, amount math.Int, originTx string) error {
	return k.IssueCredit(ctx, commontypes.Credit{
		Denom:    types.StakeDenom(pool),
		Holder:   beneficiary,
		Amount:   amount,
		OriginTx: originTx,
		Contract: contract,
	})
}

// PurchaseTickets issues lottery tickets to the buyer
func (k Keeper) PurchaseTickets(ctx sdk.Context, contract, buyer string, quantity uint32, originTx string) error {
	return k.IssueCredit(ctx, commontypes.Credit{
		Denom:    types.TicketDenom,
		Holder:   buyer,
		Amount:   math.NewIntFromUint64(uint64(quantity)),
		OriginTx: originTx,
		Contract: contract,
	})
}

// CreditSpins credits game spins of a tier to the player
func (k Keeper) CreditSpins(ctx sdk.Context, contract, player string, tier, spins uint32, originTx string) error {
	return k.IssueCredit(ctx, commontypes.Credit{
		Denom:    types.SpinDenom(tier),
		Holder:   player,
		Amount:   math.NewIntFromUint64(uint64(spins)),
		OriginTx: originTx,
		Contract: contract,
	})
}

// Deposit records a governance deposit for the depositor
func (k Keeper) Deposit(ctx sdk.Context, contract, depositor string, amount math.Int, originTx string) error {
	return k.IssueCredit(ctx, commontypes.Credit{
		Denom:    types.GovDepositDenom,
		Holder:   depositor,
		Amount:   amount,
		OriginTx: originTx,
		Contract: contract,
	})
}

// IssueCredit records a credit and adds it to the holder's balance. An
// origin tx can be credited at most once per denom.
func (k Keeper) IssueCredit(ctx sdk.Context, credit commontypes.Credit) error {
	if err := validateCredit(credit); err != nil {
		return err
	}

	if _, found := k.GetCredit(ctx, credit.OriginTx, credit.Denom); found {
		return errorsmod.Wrapf(types.ErrDuplicateCredit, "%s in %s", credit.OriginTx, credit.Denom)
	}

	credit.IssuedAt = ctx.BlockTime().Unix()
	if err := k.setCredit(ctx, credit); err != nil {
		return err
	}

	k.addCreditBalance(ctx, credit.Holder, credit.Denom, credit.Amount)
	k.addSupply(ctx, credit.Denom, credit.Amount)

	k.audit(ctx, commontypes.AuditCreditIssued, credit.OriginTx, []commontypes.Attribute{
		{Key: "denom", Value: credit.Denom},
		{Key: "holder", Value: credit.Holder},
		{Key: "amount", Value: credit.Amount.String()},
		{Key: "contract", Value: credit.Contract},
	})

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreditIssued,
			sdk.NewAttribute(types.AttributeKeyDenom, credit.Denom),
			sdk.NewAttribute(types.AttributeKeyAmount, credit.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyHolder, credit.Holder),
			sdk.NewAttribute(types.AttributeKeyOriginTx, credit.OriginTx),
			sdk.NewAttribute(types.AttributeKeyContract, credit.Contract),
		),
	)
	telemetry.IncrCounter(1, types.ModuleName, "credit", "issued")

	k.Logger(ctx).Info("credit issued",
		"denom", credit.Denom,
		"holder", credit.Holder,
		"amount", credit.Amount.String(),
		"origin_tx", credit.OriginTx,
	)

	return nil
}

// BurnCredit redeems credits held by a holder
func (k Keeper) BurnCredit(ctx sdk.Context, holder, denom string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	balance := k.GetCreditBalance(ctx, holder, denom)
	if balance.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "%s%s < %s%s", balance, denom, amount, denom)
	}

	k.subtractCreditBalance(ctx, holder, denom, amount)
	k.subtractSupply(ctx, denom, amount)

	k.audit(ctx, commontypes.AuditCreditBurned, "", []commontypes.Attribute{
		{Key: "denom", Value: denom},
		{Key: "holder", Value: holder},
		{Key: "amount", Value: amount.String()},
	})

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreditBurned,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyHolder, holder),
		),
	)
	telemetry.IncrCounter(1, types.ModuleName, "credit", "burned")

	return nil
}

// TransferCredit moves credits between holders
func (k Keeper) TransferCredit(ctx sdk.Context, from, to, denom string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	if err := commontypes.ValidateAddress(to); err != nil {
		return errorsmod.Wrap(types.ErrInvalidCredit, err.Error())
	}

	balance := k.GetCreditBalance(ctx, from, denom)
	if balance.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "%s%s < %s%s", balance, denom, amount, denom)
	}

	k.subtractCreditBalance(ctx, from, denom, amount)
	k.addCreditBalance(ctx, to, denom, amount)

	k.audit(ctx, commontypes.AuditCreditTransferred, "", []commontypes.Attribute{
		{Key: "denom", Value: denom},
		{Key: "from", Value: from},
		{Key: "to", Value: to},
		{Key: "amount", Value: amount.String()},
	})

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreditTransferred,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from),
			sdk.NewAttribute(types.AttributeKeyTo, to),
		),
	)

	return nil
}

// GetCreditBalance returns the credit balance for a holder and denom
func (k Keeper) GetCreditBalance(ctx sdk.Context, holder, denom string) math.Int {
	bz := ctx.KVStore(k.storeKey).Get(types.GetCreditBalanceKey(holder, denom))
	return mustUnmarshalInt(bz)
}

// GetAllCreditBalances returns all credit balances for a holder
func (k Keeper) GetAllCreditBalances(ctx sdk.Context, holder string) map[string]math.Int {
	prefix := types.GetCreditBalancePrefix(holder)
	iterator := storetypes.KVStorePrefixIterator(ctx.KVStore(k.storeKey), prefix)
	defer iterator.Close()

	balances := make(map[string]math.Int)
	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(prefix):])
		balances[denom] = mustUnmarshalInt(iterator.Value())
	}
	return balances
}

// GetAllBalances returns every non-zero balance in key order
func (k Keeper) GetAllBalances(ctx sdk.Context) []types.Balance {
	iterator := storetypes.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.CreditBalanceKeyPrefix)
	defer iterator.Close()

	balances := make([]types.Balance, 0)
	for ; iterator.Valid(); iterator.Next() {
		holder, denom := types.SplitCreditBalanceKey(iterator.Key())
		balances = append(balances, types.Balance{
			Holder: holder,
			Denom:  denom,
			Amount: mustUnmarshalInt(iterator.Value()),
		})
	}
	return balances
}

// GetCredit returns the credit an origin tx produced in a denom
func (k Keeper) GetCredit(ctx sdk.Context, originTx, denom string) (commontypes.Credit, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetCreditKey(originTx, denom))
	if bz == nil {
		return commontypes.Credit{}, false
	}

	var credit commontypes.Credit
	if err := credit.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode credit: %w", err))
	}
	return credit, true
}

// GetAllCredits returns every issued credit
func (k Keeper) GetAllCredits(ctx sdk.Context) []commontypes.Credit {
	iterator := storetypes.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.CreditKeyPrefix)
	defer iterator.Close()

	credits := make([]commontypes.Credit, 0)
	for ; iterator.Valid(); iterator.Next() {
		var credit commontypes.Credit
		if err := credit.Unmarshal(iterator.Value()); err != nil {
			panic(fmt.Errorf("failed to decode credit: %w", err))
		}
		credits = append(credits, credit)
	}
	return credits
}

// GetTotalSupply returns the outstanding amount of a denom
func (k Keeper) GetTotalSupply(ctx sdk.Context, denom string) math.Int {
	return mustUnmarshalInt(ctx.KVStore(k.storeKey).Get(types.GetTotalSupplyKey(denom)))
}

// GetAllSupply returns the outstanding amount of every denom
func (k Keeper) GetAllSupply(ctx sdk.Context) map[string]math.Int {
	iterator := storetypes.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.TotalSupplyKeyPrefix)
	defer iterator.Close()

	supply := make(map[string]math.Int)
	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(types.TotalSupplyKeyPrefix):])
		supply[denom] = mustUnmarshalInt(iterator.Value())
	}
	return supply
}

// ImportCredit stores a genesis credit record without touching balances
func (k Keeper) ImportCredit(ctx sdk.Context, credit commontypes.Credit) error {
	if err := validateCredit(credit); err != nil {
		return err
	}
	if _, found := k.GetCredit(ctx, credit.OriginTx, credit.Denom); found {
		return errorsmod.Wrapf(types.ErrDuplicateCredit, "%s in %s", credit.OriginTx, credit.Denom)
	}
	return k.setCredit(ctx, credit)
}

// ImportBalance stores a genesis balance and accounts for it in the supply
func (k Keeper) ImportBalance(ctx sdk.Context, balance types.Balance) {
	k.addCreditBalance(ctx, balance.Holder, balance.Denom, balance.Amount)
	k.addSupply(ctx, balance.Denom, balance.Amount)
}

// Private helper methods

func validateCredit(credit commontypes.Credit) error {
	if credit.OriginTx == "" || len(credit.OriginTx) > maxOriginTxLen {
		return errorsmod.Wrapf(types.ErrInvalidCredit, "origin tx id must be 1-%d bytes", maxOriginTxLen)
	}
	if err := sdk.ValidateDenom(credit.Denom); err != nil {
		return errorsmod.Wrap(types.ErrInvalidDenom, err.Error())
	}
	if err := commontypes.ValidateAddress(credit.Holder); err != nil {
		return errorsmod.Wrap(types.ErrInvalidCredit, err.Error())
	}
	if credit.Amount.IsNil() || !credit.Amount.IsPositive() {
		return errorsmod.Wrap(types.ErrInvalidAmount, "credit amount must be positive")
	}
	return nil
}

func (k Keeper) setCredit(ctx sdk.Context, credit commontypes.Credit) error {
	bz, err := credit.Marshal()
	if err != nil {
		return err
	}
	ctx.KVStore(k.storeKey).Set(types.GetCreditKey(credit.OriginTx, credit.Denom), bz)
	return nil
}

func (k Keeper) addCreditBalance(ctx sdk.Context, holder, denom string, amount math.Int) {
	k.setInt(ctx, types.GetCreditBalanceKey(holder, denom), k.GetCreditBalance(ctx, holder, denom).Add(amount))
}

func (k Keeper) subtractCreditBalance(ctx sdk.Context, holder, denom string, amount math.Int) {
	k.setInt(ctx, types.GetCreditBalanceKey(holder, denom), k.GetCreditBalance(ctx, holder, denom).Sub(amount))
}

func (k Keeper) addSupply(ctx sdk.Context, denom string, amount math.Int) {
	k.setInt(ctx, types.GetTotalSupplyKey(denom), k.GetTotalSupply(ctx, denom).Add(amount))
}

func (k Keeper) subtractSupply(ctx sdk.Context, denom string, amount math.Int) {
	k.setInt(ctx, types.GetTotalSupplyKey(denom), k.GetTotalSupply(ctx, denom).Sub(amount))
}

// setInt stores a non-negative amount, dropping the key once it reaches zero
func (k Keeper) setInt(ctx sdk.Context, key []byte, amount math.Int) {
	store := ctx.KVStore(k.storeKey)
	if amount.IsZero() {
		store.Delete(key)
		return
	}

	bz, err := amount.Marshal()
	if err != nil {
		panic(fmt.Errorf("failed to encode amount: %w", err))
	}
	store.Set(key, bz)
}

func (k Keeper) audit(ctx sdk.Context, eventType, originTx string, details []commontypes.Attribute) {
	if k.oracleKeeper == nil {
		return
	}

	log := commontypes.AuditLog{
		EventType: eventType,
		TxID:      originTx,
		Details:   details,
	}
	if _, err := k.oracleKeeper.SaveAuditLog(ctx, log); err != nil {
		k.Logger(ctx).Error("failed to save audit log", "event_type", eventType, "error", err)
	}
}

func mustUnmarshalInt(bz []byte) math.Int {
	if bz == nil {
		return math.ZeroInt()
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode amount: %w", err))
	}
	return amount
}
