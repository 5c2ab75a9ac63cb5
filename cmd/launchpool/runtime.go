package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"launchpool/internal/chain"
	"launchpool/internal/config"
	"launchpool/internal/engine"
	"launchpool/internal/ledger"
	"launchpool/internal/storage"
	"launchpool/internal/storage/postgres"
)

// runtime wires the engine to its persistence and ledger collaborators for
// one CLI invocation: restore the pool set, apply the operation, persist the
// result.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	ledger   *engine.Ledger
	store    *postgres.Store
	snapshot *storage.SnapshotFile
	chain    *chain.Client
}

func newRuntime(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	r := &runtime{cfg: cfg, logger: logger}

	var adapter ledger.Adapter
	if cfg.RPCURL != "" {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL, cfg.MaxRetries, cfg.RetryBackoff)
		if err != nil {
			r.close()
			return nil, fmt.Errorf("connect rpc: %w", err)
		}
		r.chain = chainClient
		adapter = chainClient

		chainID, err := chainClient.ChainID(ctx)
		if err != nil {
			r.close()
			return nil, fmt.Errorf("get chain id: %w", err)
		}
		logger.Info("rpc connected", zap.String("rpc", cfg.RPCURL), zap.String("chain_id", chainID.String()))
	} else {
		logger.Warn("no rpc endpoint configured, running in pure accounting mode: account resolution and escrow transfers disabled")
	}

	var journal storage.Journal
	if cfg.Journal != "" {
		journal = storage.NewJSONLJournal(cfg.Journal)
	}

	r.ledger = engine.NewLedger(engine.Config{
		Adapter: adapter,
		Journal: journal,
		Logger:  logger,
	})

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			r.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		r.store = store

		pools, err := store.ListPools(ctx)
		if err != nil {
			r.close()
			return nil, fmt.Errorf("load pools: %w", err)
		}
		if err := r.ledger.Restore(pools); err != nil {
			r.close()
			return nil, fmt.Errorf("restore pools: %w", err)
		}
	} else {
		r.snapshot = storage.NewSnapshotFile(cfg.Snapshot)
		pools, ok, err := r.snapshot.Load()
		if err != nil {
			r.close()
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if ok {
			if err := r.ledger.Restore(pools); err != nil {
				r.close()
				return nil, fmt.Errorf("restore pools: %w", err)
			}
		}
	}

	return r, nil
}

// persist writes the current pool set to the configured store.
func (r *runtime) persist(ctx context.Context) error {
	pools := r.ledger.ListPools()
	if r.store != nil {
		if err := r.store.UpsertPools(ctx, pools); err != nil {
			return fmt.Errorf("persist pools: %w", err)
		}
		return nil
	}
	if err := r.snapshot.Save(pools); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

func (r *runtime) close() {
	if r.store != nil {
		r.store.Close()
	}
	if r.chain != nil {
		r.chain.Close()
	}
	if r.logger != nil {
		r.logger.Sync()
	}
}
