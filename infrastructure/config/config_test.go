package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kaspanet/blockminer/domain/consensus/utils/constants"
	"github.com/kaspanet/blockminer/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %+v", err)
	}
	if cfg.MempoolDir != defaultMempoolDir || cfg.OutputFile != defaultOutputFilename {
		t.Fatalf("LoadConfig: unexpected paths %s, %s", cfg.MempoolDir, cfg.OutputFile)
	}
	if cfg.MaxBlockTransactions != constants.DefaultMaxBlockTransactions {
		t.Fatalf("LoadConfig: expected %d block transactions, got %d",
			constants.DefaultMaxBlockTransactions, cfg.MaxBlockTransactions)
	}
	expectedTarget, err := pow.ParseTarget(constants.DefaultDifficulty)
	if err != nil {
		t.Fatalf("ParseTarget: %+v", err)
	}
	if cfg.Target.Cmp(expectedTarget) != 0 {
		t.Fatalf("LoadConfig: expected target %x, got %x", expectedTarget, cfg.Target)
	}
	if cfg.DataDir != "" {
		t.Fatalf("LoadConfig: expected an in-memory ledger by default")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	difficulty := "00ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	cfg, err := LoadConfig([]string{
		"--mempool", "txs",
		"--output", "block.txt",
		"--difficulty", difficulty,
		"--maxblocktxs", "3",
		"--workers", "4",
		"--timeout", "30s",
		"--blocks", "2",
		"-d", "debug",
	})
	if err != nil {
		t.Fatalf("LoadConfig: %+v", err)
	}
	if cfg.MempoolDir != "txs" || cfg.OutputFile != "block.txt" {
		t.Fatalf("LoadConfig: unexpected paths %s, %s", cfg.MempoolDir, cfg.OutputFile)
	}
	if cfg.MaxBlockTransactions != 3 || cfg.Workers != 4 || cfg.NumberOfBlocks != 2 {
		t.Fatalf("LoadConfig: unexpected numeric options %+v", cfg.Flags)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("LoadConfig: expected a 30s timeout, got %s", cfg.Timeout)
	}
	expectedTarget, _ := pow.ParseTarget(difficulty)
	if cfg.Target.Cmp(expectedTarget) != 0 {
		t.Fatalf("LoadConfig: expected target %x, got %x", expectedTarget, cfg.Target)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "short difficulty", args: []string{"--difficulty", "0000ffff"}},
		{name: "non-hex difficulty", args: []string{"--difficulty",
			"zz00000000000000000000000000000000000000000000000000000000000000"}},
		{name: "no workers", args: []string{"--workers", "0"}},
		{name: "negative block transactions", args: []string{"--maxblocktxs", "-1"}},
		{name: "no blocks", args: []string{"--blocks", "0"}},
		{name: "bad profile port", args: []string{"--profile", "80"}},
		{name: "bad log level", args: []string{"-d", "loud"}},
		{name: "unknown flag", args: []string{"--nosuchflag"}},
	}

	for _, test := range tests {
		_, err := LoadConfig(test.args)
		if err == nil {
			t.Fatalf("%s: LoadConfig unexpectedly succeeded", test.name)
		}
	}

	_, err := LoadConfig([]string{"--difficulty", "0000ffff"})
	if !errors.Is(err, pow.ErrMalformedTarget) {
		t.Fatalf("LoadConfig: expected ErrMalformedTarget, got %+v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "blockminer.conf")
	err := os.WriteFile(configFile, []byte("workers = 3\nmaxblocktxs = 5\n"), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	cfg, err := LoadConfig([]string{"--configfile", configFile, "--maxblocktxs", "7"})
	if err != nil {
		t.Fatalf("LoadConfig: %+v", err)
	}
	if cfg.Workers != 3 {
		t.Fatalf("LoadConfig: expected 3 workers from the config file, got %d", cfg.Workers)
	}
	if cfg.MaxBlockTransactions != 7 {
		t.Fatalf("LoadConfig: command line options should override the config file, got %d",
			cfg.MaxBlockTransactions)
	}
}

func TestLoadConfigVersion(t *testing.T) {
	cfg, err := LoadConfig([]string{"-V", "--difficulty", "bad"})
	if err != nil {
		t.Fatalf("LoadConfig: %+v", err)
	}
	if !cfg.ShowVersion {
		t.Fatalf("LoadConfig: expected ShowVersion to be set")
	}
}
