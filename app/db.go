package app

import (
	"path/filepath"

	"github.com/kaspanet/blockminer/domain/consensus/datastructures/blockstore"
	"github.com/kaspanet/blockminer/domain/ledger"
	"github.com/kaspanet/blockminer/infrastructure/config"
	"github.com/kaspanet/blockminer/infrastructure/db/database/ldb"
)

const (
	ledgerDirname  = "ledger"
	blockCacheSize = 100
)

// databasePath returns the path to the ledger database
func databasePath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, ledgerDirname)
}

// openLedger returns the ledger blocks are mined on top of. The ledger is
// kept in memory unless a data directory is configured.
func openLedger(cfg *config.Config) (*ledger.Ledger, error) {
	if cfg.DataDir == "" {
		return ledger.New(), nil
	}

	dbPath := databasePath(cfg)
	log.Infof("Loading ledger database from '%s'", dbPath)

	// The version file lives inside the LevelDB directory, so it can only
	// be checked once that directory exists
	db, err := ldb.NewLevelDB(dbPath)
	if err != nil {
		return nil, err
	}

	hasVersionFile, err := checkDatabaseVersion(dbPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !hasVersionFile {
		err := createDatabaseVersionFile(dbPath)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	blockStore, err := blockstore.New(db, blockCacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	l, err := ledger.NewWithBlockStore(blockStore)
	if err != nil {
		blockStore.Close()
		return nil, err
	}
	return l, nil
}
