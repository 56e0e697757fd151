package cmd

import (
	"fmt"
	"time"

	"pocket-cards/core/config"
	"pocket-cards/core/database"
	"pocket-cards/core/logger"
	"pocket-cards/core/reconcile"
	"pocket-cards/core/storage"
	"pocket-cards/feature/cards"
	"pocket-cards/feature/catalog"

	"go.uber.org/zap"
)

// loadRuntime loads the configuration and builds the logger every command uses.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)
	return cfg, logg, nil
}

// loadTables loads the reconciliation tables and logs their inconsistencies.
func loadTables(path string, logg *zap.Logger) (*reconcile.Tables, error) {
	tables, err := reconcile.LoadTables(path)
	if err != nil {
		return nil, err
	}
	for _, problem := range tables.Validate() {
		logg.Warn("Reconciliation table inconsistency", zap.String("problem", problem))
	}
	return tables, nil
}

func newCatalogService(cfg catalog.Config, tables *reconcile.Tables, logg *zap.Logger) *catalog.Service {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	return catalog.NewService(catalog.NewClient(cfg), ttl, tables.ExpansionAliases, logg)
}

// openCardStore connects to the database and migrates the cards table.
func openCardStore(cfg database.Config, logg *zap.Logger) (*cards.Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	store := cards.NewStore(db, logg)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func newStorageClient(cfg storage.Config) (storage.Client, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}
