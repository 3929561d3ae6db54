// Package backend opens the ledger store selected by configuration.
package backend

import (
	"btcledger/internal/config"
	"btcledger/internal/repositories"
	"btcledger/internal/repositories/memory"
)

// Open returns the configured store and a function releasing it.
func Open(cfg config.DatabaseConfig) (repositories.Store, func() error, error) {
	if cfg.Backend == config.BackendMemory {
		return memory.NewStore(), func() error { return nil }, nil
	}

	db, err := repositories.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewGormStore(db), sqlDB.Close, nil
}
