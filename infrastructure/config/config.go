package config

import (
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/blockminer/domain/consensus/utils/constants"
	"github.com/kaspanet/blockminer/domain/consensus/utils/pow"
	"github.com/kaspanet/blockminer/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultMempoolDir     = "mempool"
	defaultOutputFilename = "output.txt"
	defaultLogDirname     = "logs"
	defaultLogLevel       = "info"
	defaultWorkers        = 1
	defaultNumberOfBlocks = 1

	// DefaultLogFilename is the name of the main log file in the log directory
	DefaultLogFilename = "blockminer.log"

	// DefaultErrLogFilename is the name of the error log file in the log
	// directory
	DefaultErrLogFilename = "blockminer_err.log"
)

// Flags defines the configuration options for blockminer.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion          bool          `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile           string        `short:"C" long:"configfile" description:"Path to an INI configuration file"`
	MempoolDir           string        `long:"mempool" description:"Directory holding one JSON transaction per file"`
	OutputFile           string        `long:"output" description:"File the mined block is written to"`
	Difficulty           string        `long:"difficulty" description:"Difficulty target as 64 hex digits. Block hashes must be strictly below it"`
	MaxBlockTransactions int           `long:"maxblocktxs" description:"Maximum number of transactions selected into a block"`
	Workers              int           `long:"workers" description:"Number of goroutines searching for a nonce"`
	MaxAttempts          uint64        `long:"maxattempts" description:"Maximum number of nonces tried per block. 0 means unbounded"`
	Timeout              time.Duration `long:"timeout" description:"Abort mining after this duration (e.g. 30s). 0 means no timeout"`
	NumberOfBlocks       uint64        `short:"n" long:"blocks" description:"Number of blocks to mine"`
	DataDir              string        `short:"b" long:"datadir" description:"Directory to persist the ledger in. If omitted, the ledger is kept in memory"`
	LogDir               string        `long:"logdir" description:"Directory to log output"`
	DebugLevel           string        `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	Profile              string        `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
}

// Config defines the configuration options for blockminer, along with the
// values derived from them.
type Config struct {
	*Flags

	// Target is the parsed form of Difficulty
	Target *big.Int
}

func newConfigParser(cfgFlags *Flags, options flags.Options) *flags.Parser {
	parser := flags.NewParser(cfgFlags, options)
	return parser
}

func defaultFlags() *Flags {
	return &Flags{
		MempoolDir:           defaultMempoolDir,
		OutputFile:           defaultOutputFilename,
		Difficulty:           constants.DefaultDifficulty,
		MaxBlockTransactions: constants.DefaultMaxBlockTransactions,
		Workers:              defaultWorkers,
		NumberOfBlocks:       defaultNumberOfBlocks,
		LogDir:               defaultLogDirname,
		DebugLevel:           defaultLogLevel,
	}
}

// DefaultConfig returns the default blockminer configuration
func DefaultConfig() *Config {
	config := &Config{Flags: defaultFlags()}
	config.Target, _ = pow.ParseTarget(config.Difficulty)
	return config
}

// LoadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// If the version flag is set, the returned config is otherwise unvalidated.
func LoadConfig(args []string) (*Config, error) {
	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := defaultFlags()
	preParser := newConfigParser(preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if preCfg.ShowVersion {
		return &Config{Flags: preCfg}, nil
	}

	cfgFlags := defaultFlags()
	parser := newConfigParser(cfgFlags, flags.Default)

	if preCfg.ConfigFile != "" {
		err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing config file %s", preCfg.ConfigFile)
		}
	}

	// Parse command line options again to ensure they take precedence.
	_, err = parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Flags: cfgFlags}
	err = cfg.validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	target, err := pow.ParseTarget(cfg.Difficulty)
	if err != nil {
		return errors.Wrapf(err, "invalid --difficulty %s", cfg.Difficulty)
	}
	cfg.Target = target

	if cfg.Workers < 1 {
		return errors.Errorf("--workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.MaxBlockTransactions < 0 {
		return errors.Errorf("--maxblocktxs may not be negative, got %d", cfg.MaxBlockTransactions)
	}
	if cfg.Timeout < 0 {
		return errors.Errorf("--timeout may not be negative, got %s", cfg.Timeout)
	}
	if cfg.NumberOfBlocks == 0 {
		return errors.New("--blocks must be at least 1")
	}

	if cfg.Profile != "" {
		profilePort, err := strconv.Atoi(cfg.Profile)
		if err != nil || profilePort < 1024 || profilePort > 65535 {
			return errors.New("The profile port must be between 1024 and 65535")
		}
	}

	// Parse, validate, and set debug log level(s).
	err = logger.ParseAndSetLogLevels(cfg.DebugLevel)
	if err != nil {
		return err
	}

	return nil
}

// LogFile returns the path of the main log file
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, DefaultLogFilename)
}

// ErrLogFile returns the path of the error log file
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, DefaultErrLogFilename)
}

// AppName returns the name of the running executable, without extension
func AppName() string {
	appName := filepath.Base(os.Args[0])
	return appName[:len(appName)-len(filepath.Ext(appName))]
}
