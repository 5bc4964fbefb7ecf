package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// Keeper of the oracle store
type Keeper struct {
	storeKey storetypes.StoreKey

	stakingKeeper    types.StakingKeeper
	nftKeeper        types.NFTKeeper
	lotteryKeeper    types.LotteryKeeper
	gameKeeper       types.GameKeeper
	governanceKeeper types.GovernanceKeeper
}

// NewKeeper creates a new oracle Keeper instance. Downstream keepers are wired
// afterwards through the Set*Keeper methods since they depend on the oracle
// keeper for authorization and audit logging.
func NewKeeper(storeKey storetypes.StoreKey) *Keeper {
	return &Keeper{
		storeKey: storeKey,
	}
}

// SetStakingKeeper sets the keeper that receives stake credits
func (k *Keeper) SetStakingKeeper(stakingKeeper types.StakingKeeper) {
	k.stakingKeeper = stakingKeeper
}

// SetNFTKeeper sets the keeper that receives NFT purchases
func (k *Keeper) SetNFTKeeper(nftKeeper types.NFTKeeper) {
	k.nftKeeper = nftKeeper
}

// SetLotteryKeeper sets the keeper that receives ticket purchases
func (k *Keeper) SetLotteryKeeper(lotteryKeeper types.LotteryKeeper) {
	k.lotteryKeeper = lotteryKeeper
}

// SetGameKeeper sets the keeper that receives spin credits
func (k *Keeper) SetGameKeeper(gameKeeper types.GameKeeper) {
	k.gameKeeper = gameKeeper
}

// SetGovernanceKeeper sets the keeper that receives governance deposits
func (k *Keeper) SetGovernanceKeeper(governanceKeeper types.GovernanceKeeper) {
	k.governanceKeeper = governanceKeeper
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetParams returns the module parameters, falling back to the defaults
// before genesis has written any.
func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	if err := params.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode oracle params: %w", err))
	}
	return params
}

// SetParams validates and stores the module parameters
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	bz, err := params.Marshal()
	if err != nil {
		return err
	}
	ctx.KVStore(k.storeKey).Set(types.ParamsKey, bz)
	return nil
}

// Private helper methods

func (k Keeper) getCounter(ctx sdk.Context, key []byte) uint64 {
	bz := ctx.KVStore(k.storeKey).Get(key)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setCounter(ctx sdk.Context, key []byte, value uint64) {
	ctx.KVStore(k.storeKey).Set(key, sdk.Uint64ToBigEndian(value))
}
