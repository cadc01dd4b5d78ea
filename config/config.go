// Package config loads the mnengined daemon's configuration: command line
// flags optionally overlaid on an INI config file, in the same two-pass
// jessevdk/go-flags idiom kaspanet-kaspad/config/config.go uses (pre-parse
// for --configfile, then a config-file pass, then a final CLI pass so flags
// take precedence).
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/dashpay/mnengine/chainparams"
	"github.com/dashpay/mnengine/logs"
)

const (
	defaultConfigFilename    = "mnengined.conf"
	defaultDataDirname       = "data"
	defaultLogLevel          = "info"
	defaultLogDirname        = "logs"
	defaultLogFilename       = "mnengined.log"
	defaultErrLogFilename    = "mnengined_err.log"
	defaultNetwork           = "mainnet"
	defaultSweepIntervalSecs = 60

	version = "0.1.0"
)

var (
	// DefaultHomeDir is the default directory mnengined stores its data and
	// logs under.
	DefaultHomeDir = appDataDir("mnengined")

	defaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(DefaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(DefaultHomeDir, defaultLogDirname)
)

// Flags defines the command-line and config-file options for mnengined.
//
// See Load for details on the configuration load process.
type Flags struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir     string `short:"b" long:"datadir" description:"Directory to store persisted votes and tallies"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical} -- may also be <subsystem>=<level>,..."`
	Network     string `long:"network" description:"Network to run on {mainnet, testnet3, regtest}"`

	MasternodePrivKey  string `long:"masternodeprivkey" description:"Hex-encoded secp256k1 private key identifying this node's own masternode, enabling the self-voting loop"`
	MasternodeOutpoint string `long:"masternodeoutpoint" description:"This masternode's collateral outpoint, as txid:vout, required alongside masternodeprivkey"`

	MinBlocksToStore   int32   `long:"minblockstostore" description:"Floor on the number of most-recent heights of votes and tallies retained"`
	StorageCoefficient float64 `long:"storagecoefficient" description:"Multiplier on registry size used to compute the vote/tally storage window"`
	DisableEnforcement bool    `long:"disableenforcement" description:"Accept blocks that fail the regular-block payee predicate instead of rejecting them"`
	SweepIntervalSecs  int     `long:"sweepinterval" description:"Seconds between periodic governance-trigger sweeps"`
}

// Config is the fully resolved, validated configuration.
type Config struct {
	*Flags

	Params *chainparams.Params

	// SelfOutpoint and SelfPrivKey are set only when both
	// masternodeprivkey and masternodeoutpoint were supplied.
	SelfOutpoint *wire.OutPoint
	SelfPrivKey  *btcec.PrivateKey

	// LogFile and ErrLogFile are the resolved paths mnengined's own log
	// rotator writes into, under the network-namespaced LogDir.
	LogFile    string
	ErrLogFile string
}

// appDataDir mirrors kaspanet-kaspad/util.AppDataDir's per-OS home
// directory convention, scoped to this daemon's own name.
func appDataDir(name string) string {
	if home := os.Getenv("HOME"); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", name)
		}
		return filepath.Join(home, "."+strings.ToLower(name))
	}
	return "." + strings.ToLower(name)
}

// cleanAndExpandPath expands environment variables and a leading ~ in path,
// then cleans the result.
func cleanAndExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		path = strings.Replace(path, "~", filepath.Dir(DefaultHomeDir), 1)
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// newParser returns a new command line flags parser for cfgFlags.
func newParser(cfgFlags *Flags, options flags.Options) *flags.Parser {
	return flags.NewParser(cfgFlags, options)
}

// Load parses mnengined's configuration in the standard four-step process:
//  1. Start from a default config with sane settings
//  2. Pre-parse the command line to find an alternative config file
//  3. Load the config file, overwriting defaults with any specified options
//  4. Parse CLI options again, overwriting/adding any specified options
//
// Command line options always take precedence over the config file.
func Load() (*Config, []string, error) {
	cfgFlags := Flags{
		ConfigFile:         defaultConfigFile,
		DataDir:            defaultDataDir,
		LogDir:             defaultLogDir,
		DebugLevel:         defaultLogLevel,
		Network:            defaultNetwork,
		MinBlocksToStore:   0,
		StorageCoefficient: 0,
		SweepIntervalSecs:  defaultSweepIntervalSecs,
	}

	preCfg := cfgFlags
	preParser := newParser(&preCfg, flags.HelpFlag)
	_, err := preParser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}

	if preCfg.ShowVersion {
		fmt.Println("mnengined version", version)
		os.Exit(0)
	}

	var configFileError error
	parser := newParser(&cfgFlags, flags.Default)
	if _, statErr := os.Stat(preCfg.ConfigFile); os.IsNotExist(statErr) {
		configFileError = statErr
	} else {
		err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
		if err != nil {
			if _, ok := err.(*os.PathError); !ok {
				fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err)
				return nil, nil, err
			}
			configFileError = err
		}
	}

	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, "Use --help to show usage")
		}
		return nil, nil, err
	}

	if err := os.MkdirAll(cleanAndExpandPath(cfgFlags.DataDir), 0700); err != nil {
		return nil, nil, errors.Wrap(err, "config: failed to create data directory")
	}

	params, err := chainparams.Lookup(cfgFlags.Network)
	if err != nil {
		return nil, nil, errors.Wrap(err, "config: invalid --network")
	}
	params = applyStorageOverrides(params, cfgFlags.MinBlocksToStore, cfgFlags.StorageCoefficient)

	cfg := &Config{
		Flags:  &cfgFlags,
		Params: params,
	}
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfgFlags.DataDir), params.Name)
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfgFlags.LogDir), params.Name)
	cfg.LogFile = filepath.Join(cfg.LogDir, defaultLogFilename)
	cfg.ErrLogFile = filepath.Join(cfg.LogDir, defaultErrLogFilename)

	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logs.SupportedSubsystems())
		os.Exit(0)
	}
	if err := logs.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, errors.Wrap(err, "config: invalid --debuglevel")
	}

	if (cfgFlags.MasternodePrivKey == "") != (cfgFlags.MasternodeOutpoint == "") {
		return nil, nil, errors.New("config: --masternodeprivkey and --masternodeoutpoint must be set together")
	}
	if cfgFlags.MasternodePrivKey != "" {
		outpoint, err := parseOutpoint(cfgFlags.MasternodeOutpoint)
		if err != nil {
			return nil, nil, errors.Wrap(err, "config: invalid --masternodeoutpoint")
		}
		privKey, err := parsePrivateKey(cfgFlags.MasternodePrivKey)
		if err != nil {
			return nil, nil, errors.Wrap(err, "config: invalid --masternodeprivkey")
		}
		cfg.SelfOutpoint = outpoint
		cfg.SelfPrivKey = privKey
	}

	if configFileError != nil {
		log.Warnf("%s", configFileError)
	}

	return cfg, remainingArgs, nil
}

var log = logs.RegisterSubSystem("CNFG")

// applyStorageOverrides returns params unchanged, or a copy of it with
// MinBlocksToStore/StorageCoefficient replaced by whichever of
// minBlocksToStore/storageCoefficient is non-zero. params is one of the
// shared, package-level chainparams.Params values, so an override must
// copy before mutating rather than writing through the pointer.
func applyStorageOverrides(params *chainparams.Params, minBlocksToStore int32, storageCoefficient float64) *chainparams.Params {
	if minBlocksToStore == 0 && storageCoefficient == 0 {
		return params
	}
	overridden := *params
	if minBlocksToStore != 0 {
		overridden.MinBlocksToStore = minBlocksToStore
	}
	if storageCoefficient != 0 {
		overridden.StorageCoefficient = storageCoefficient
	}
	return &overridden
}

// parseOutpoint parses a "txid:vout" string into a wire.OutPoint, the same
// collateral-identity format masternode.Outpoint (an alias of wire.OutPoint)
// uses throughout this subsystem.
func parseOutpoint(s string) (*wire.OutPoint, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, errors.Errorf("expected txid:vout, got %q", s)
	}
	hash, err := chainhash.NewHashFromStr(parts[0])
	if err != nil {
		return nil, err
	}
	index, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, err
	}
	return wire.NewOutPoint(hash, uint32(index)), nil
}

// parsePrivateKey decodes a hex-encoded secp256k1 private key.
func parsePrivateKey(s string) (*btcec.PrivateKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	privKey, _ := btcec.PrivKeyFromBytes(raw)
	return privKey, nil
}
