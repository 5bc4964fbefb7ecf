package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/module"

	"github.com/payment-oracle/cosmos/x/multisig"
	multisigkeeper "github.com/payment-oracle/cosmos/x/multisig/keeper"
	multisigtypes "github.com/payment-oracle/cosmos/x/multisig/types"
	"github.com/payment-oracle/cosmos/x/oracle"
	oraclekeeper "github.com/payment-oracle/cosmos/x/oracle/keeper"
	oracletypes "github.com/payment-oracle/cosmos/x/oracle/types"
	"github.com/payment-oracle/cosmos/x/rewards"
	rewardskeeper "github.com/payment-oracle/cosmos/x/rewards/keeper"
	rewardstypes "github.com/payment-oracle/cosmos/x/rewards/types"
)

const (
	AccountAddressPrefix = "cosmos"
	Name                 = "payment-oracle"
)

var (
	// DefaultNodeHome default home directories for the application daemon
	DefaultNodeHome string

	// ModuleBasics defines the module BasicManager is in charge of setting up basic,
	// non-dependant module elements, such as codec registration
	// and genesis verification.
	ModuleBasics = module.NewBasicManager(
		oracle.AppModuleBasic{},
		rewards.AppModuleBasic{},
		multisig.AppModuleBasic{},
	)
)

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, "."+Name)
}

// App hosts the payment oracle modules on an IAVL multistore. Messages are
// delivered one at a time inside a block; each runs in its own cache and is
// written only when its handler succeeds.
type App struct {
	logger  log.Logger
	db      dbm.DB
	cms     storetypes.CommitMultiStore
	cdc     *codec.LegacyAmino
	chainID string

	// keys to access the substores
	keys map[string]*storetypes.KVStoreKey

	// keepers
	OracleKeeper   *oraclekeeper.Keeper
	RewardsKeeper  *rewardskeeper.Keeper
	MultisigKeeper *multisigkeeper.Keeper

	// the module manager
	mm *module.Manager

	invariants *invariantRegistry
	block      *blockState
}

// blockState is the cached state of the block being delivered
type blockState struct {
	ms  storetypes.CacheMultiStore
	ctx sdk.Context
}

// New returns a reference to an initialized app backed by db
func New(logger log.Logger, db dbm.DB, chainID string) (*App, error) {
	legacyAmino := codec.NewLegacyAmino()
	ModuleBasics.RegisterLegacyAminoCodec(legacyAmino)

	keys := storetypes.NewKVStoreKeys(
		oracletypes.StoreKey,
		rewardstypes.StoreKey,
		multisigtypes.StoreKey,
	)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}

	app := &App{
		logger:     logger.With("module", "app"),
		db:         db,
		cms:        cms,
		cdc:        legacyAmino,
		chainID:    chainID,
		keys:       keys,
		invariants: newInvariantRegistry(),
	}

	app.OracleKeeper = oraclekeeper.NewKeeper(keys[oracletypes.StoreKey])
	app.RewardsKeeper = rewardskeeper.NewKeeper(keys[rewardstypes.StoreKey])
	app.MultisigKeeper = multisigkeeper.NewKeeper(keys[multisigtypes.StoreKey])

	// Set cross-module dependencies
	app.RewardsKeeper.SetOracleKeeper(app.OracleKeeper)
	app.MultisigKeeper.SetOracleKeeper(app.OracleKeeper)
	app.OracleKeeper.SetStakingKeeper(app.RewardsKeeper)
	app.OracleKeeper.SetLotteryKeeper(app.RewardsKeeper)
	app.OracleKeeper.SetGameKeeper(app.RewardsKeeper)
	app.OracleKeeper.SetGovernanceKeeper(app.RewardsKeeper)
	app.OracleKeeper.SetNFTKeeper(app.MultisigKeeper)

	app.mm = module.NewManager(
		oracle.NewAppModule(app.OracleKeeper),
		rewards.NewAppModule(app.RewardsKeeper),
		multisig.NewAppModule(app.MultisigKeeper),
	)
	app.mm.RegisterInvariants(app.invariants)

	if app.LastBlockHeight() > 0 {
		if err := app.checkStoreVersions(); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Name returns the name of the App
func (app *App) Name() string { return Name }

// LegacyAmino returns the app's amino codec.
func (app *App) LegacyAmino() *codec.LegacyAmino {
	return app.cdc
}

// ChainID returns the chain id contexts are built with
func (app *App) ChainID() string { return app.chainID }

// LastBlockHeight returns the height of the last committed block
func (app *App) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// LastCommitID returns the id of the last committed block
func (app *App) LastCommitID() storetypes.CommitID {
	return app.cms.LastCommitID()
}

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// DefaultGenesis returns a default genesis from the registered AppModuleBasic's.
func (app *App) DefaultGenesis() map[string]json.RawMessage {
	return ModuleBasics.DefaultGenesis(nil)
}

// BeginBlock opens the next block at the given time
func (app *App) BeginBlock(blockTime time.Time) error {
	if app.block != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "block already in progress")
	}

	header := cmtproto.Header{
		ChainID: app.chainID,
		Height:  app.LastBlockHeight() + 1,
		Time:    blockTime.UTC(),
	}
	ms := app.cms.CacheMultiStore()
	app.block = &blockState{
		ms:  ms,
		ctx: sdk.NewContext(ms, header, false, app.logger),
	}
	return nil
}

// Commit writes the current block, checks the invariants and persists a new
// version. A broken invariant discards the block.
func (app *App) Commit() (storetypes.CommitID, error) {
	if app.block == nil {
		return storetypes.CommitID{}, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "no block in progress")
	}
	block := app.block
	app.block = nil

	if err := app.invariants.Assert(block.ctx); err != nil {
		app.logger.Error("invariant broken, discarding block", "height", block.ctx.BlockHeight(), "error", err)
		return storetypes.CommitID{}, err
	}

	block.ms.Write()
	commitID := app.cms.Commit()
	app.logger.Info("committed block", "height", commitID.Version, "hash", fmt.Sprintf("%X", commitID.Hash))
	return commitID, nil
}

// QueryContext returns a read-only context over the last committed state.
// Writes made through it are discarded.
func (app *App) QueryContext(blockTime time.Time) sdk.Context {
	header := cmtproto.Header{
		ChainID: app.chainID,
		Height:  app.LastBlockHeight(),
		Time:    blockTime.UTC(),
	}
	return sdk.NewContext(app.cms.CacheMultiStore(), header, true, app.logger)
}

// NewUncachedContext returns a context that writes straight to the commit
// multistore, bypassing the block cache.
func (app *App) NewUncachedContext(header cmtproto.Header) sdk.Context {
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Close releases the underlying database
func (app *App) Close() error {
	return app.db.Close()
}
