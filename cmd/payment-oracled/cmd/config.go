package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/payment-oracle/cosmos/app"
)

const (
	envPrefix = "PAYMENT_ORACLE"

	keyHome      = "home"
	keyLogLevel  = "log_level"
	keyDBBackend = "db_backend"
	keyChainID   = "chain_id"

	defaultChainID = "payment-oracle-1"
)

// Config is the node configuration resolved from flags, environment and
// <home>/config/app.toml, in that order of precedence
type Config struct {
	Home      string `mapstructure:"home"`
	LogLevel  string `mapstructure:"log_level"`
	DBBackend string `mapstructure:"db_backend"`
	ChainID   string `mapstructure:"chain_id"`
}

// ConfigDir returns the directory holding app.toml and genesis.json
func (c Config) ConfigDir() string { return filepath.Join(c.Home, "config") }

// DataDir returns the directory holding the application database
func (c Config) DataDir() string { return filepath.Join(c.Home, "data") }

// GenesisFile returns the path of genesis.json
func (c Config) GenesisFile() string { return filepath.Join(c.ConfigDir(), "genesis.json") }

func (c Config) configFile() string { return filepath.Join(c.ConfigDir(), "app.toml") }

func (c Config) validate() error {
	if c.Home == "" {
		return fmt.Errorf("home directory cannot be empty")
	}
	if c.ChainID == "" {
		return fmt.Errorf("chain id cannot be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyHome, app.DefaultNodeHome)
	v.SetDefault(keyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(keyDBBackend, string(dbm.GoLevelDBBackend))
	v.SetDefault(keyChainID, defaultChainID)
	return v
}

// configFlags maps each command line flag to its config key
var configFlags = map[string]string{
	"home":       keyHome,
	"log-level":  keyLogLevel,
	"db-backend": keyDBBackend,
	"chain-id":   keyChainID,
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("home", app.DefaultNodeHome, "node home directory")
	cmd.PersistentFlags().String("log-level", zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().String("db-backend", string(dbm.GoLevelDBBackend), "database backend")
	cmd.PersistentFlags().String("chain-id", defaultChainID, "chain id")
}

// LoadConfig resolves the configuration for cmd. A missing app.toml is not an
// error.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	v := newViper()
	for name, key := range configFlags {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, err
			}
		}
	}

	v.SetConfigFile(filepath.Join(v.GetString(keyHome), "config", "app.toml"))
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// writeConfig stores cfg as app.toml unless one already exists
func writeConfig(cfg Config) error {
	if err := os.MkdirAll(cfg.ConfigDir(), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.Set(keyLogLevel, cfg.LogLevel)
	v.Set(keyDBBackend, cfg.DBBackend)
	v.Set(keyChainID, cfg.ChainID)

	err := v.SafeWriteConfigAs(cfg.configFile())
	var exists viper.ConfigFileAlreadyExistsError
	if errors.As(err, &exists) {
		return nil
	}
	return err
}

func newLogger(cfg Config) log.Logger {
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	return log.NewLogger(os.Stderr, log.LevelOption(level))
}

// openApp opens the application database under the node home
func openApp(cfg Config) (*app.App, error) {
	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return nil, err
	}

	db, err := dbm.NewDB("application", dbm.BackendType(cfg.DBBackend), cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DBBackend, err)
	}

	a, err := app.New(newLogger(cfg), db, cfg.ChainID)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// openInitialisedApp opens the application and fails when init has not run
func openInitialisedApp(cfg Config) (*app.App, error) {
	a, err := openApp(cfg)
	if err != nil {
		return nil, err
	}
	if a.LastBlockHeight() == 0 {
		_ = a.Close()
		return nil, fmt.Errorf("chain is not initialised, run init first")
	}
	return a, nil
}
