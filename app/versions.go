package app

import (
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/types/module"
)

// StoreVersionKey holds the consensus version a module's store was written
// with. It is set at genesis and never deleted, so no substore is ever
// committed empty: goleveldb reads an empty IAVL root back as missing and the
// version would fail to load after a restart.
var StoreVersionKey = []byte{0xff}

// setStoreVersions records the consensus version of every module in its store
func (app *App) setStoreVersions(ms storetypes.MultiStore) {
	for name, mod := range app.mm.Modules {
		key, ok := app.keys[name]
		if !ok {
			continue
		}
		version := uint64(0)
		if hv, ok := mod.(module.HasConsensusVersion); ok {
			version = hv.ConsensusVersion()
		}
		ms.GetKVStore(key).Set(StoreVersionKey, binary.BigEndian.AppendUint64(nil, version))
	}
}

// StoreVersions returns the recorded consensus version of every module store
func (app *App) StoreVersions() module.VersionMap {
	versions := make(module.VersionMap, len(app.keys))
	for name, key := range app.keys {
		bz := app.cms.GetKVStore(key).Get(StoreVersionKey)
		if len(bz) != 8 {
			continue
		}
		versions[name] = binary.BigEndian.Uint64(bz)
	}
	return versions
}

// checkStoreVersions fails when a committed store was written by a different
// consensus version than the module now loaded
func (app *App) checkStoreVersions() error {
	stored := app.StoreVersions()
	for name, version := range app.mm.GetVersionMap() {
		if _, ok := app.keys[name]; !ok {
			continue
		}
		got, ok := stored[name]
		if !ok {
			return fmt.Errorf("store %s has no recorded version", name)
		}
		if got != version {
			return fmt.Errorf("store %s is at version %d, module expects %d", name, got, version)
		}
	}
	return nil
}
