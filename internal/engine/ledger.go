package engine

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"launchpool/internal/ledger"
	"launchpool/internal/model"
	"launchpool/internal/storage"
)

// Config holds the ledger's collaborators. Adapter and Journal are optional:
// without an adapter the engine runs in pure accounting mode (no account
// resolution, no value movement); without a journal committed events are
// only logged.
type Config struct {
	Adapter ledger.Adapter
	Journal storage.Journal
	Logger  *zap.Logger
	Now     func() time.Time
}

type poolEntry struct {
	mu      sync.Mutex
	removed bool
	pool    model.Pool
}

// Ledger owns the pool registry and is the sole mutator of pool records.
// Operations on different pools proceed in parallel; operations on the same
// pool are serialized by a per-entry mutex held for the whole
// read-check-mutate sequence.
type Ledger struct {
	mu    sync.RWMutex
	pools map[common.Address]*poolEntry

	adapter ledger.Adapter
	journal storage.Journal
	logger  *zap.Logger
	now     func() time.Time
}

// NewLedger builds a Ledger with its dependencies.
func NewLedger(cfg Config) *Ledger {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Ledger{
		pools:   make(map[common.Address]*poolEntry),
		adapter: cfg.Adapter,
		journal: cfg.Journal,
		logger:  cfg.Logger,
		now:     cfg.Now,
	}
}

// Create validates the parameters, derives the pool and vault identifiers,
// escrows the total allocation into the vault, and installs the new record.
// A second create for the same asset fails with ErrAlreadyExists.
func (l *Ledger) Create(ctx context.Context, params model.CreateParams) (common.Address, error) {
	if err := ValidateCreate(params); err != nil {
		return common.Address{}, err
	}

	poolID := DerivePoolID(params.AssetID)
	vaultID := DeriveVaultID(poolID)

	if l.adapter != nil {
		if err := l.resolveAccount(ctx, "asset", params.AssetID); err != nil {
			return common.Address{}, err
		}
		if err := l.resolveAccount(ctx, "treasury", params.TreasuryID); err != nil {
			return common.Address{}, err
		}
	}

	// The pool id is reserved with a locked placeholder entry so the escrow
	// call runs without the registry lock held. Lookups for this pool block
	// on the entry until the create commits or rolls back; other pools are
	// untouched.
	l.mu.Lock()
	if _, ok := l.pools[poolID]; ok {
		l.mu.Unlock()
		return common.Address{}, fmt.Errorf("%w: pool %s", ErrAlreadyExists, poolID.Hex())
	}
	entry := &poolEntry{}
	entry.mu.Lock()
	l.pools[poolID] = entry
	l.mu.Unlock()

	if l.adapter != nil {
		if err := l.adapter.TransferAsset(ctx, params.Authority, vaultID, params.TotalAllocation); err != nil {
			l.dropEntry(poolID, entry)
			return common.Address{}, fmt.Errorf("escrow allocation: %w", err)
		}
	}

	pool := model.Pool{
		Authority:           params.Authority,
		AssetID:             params.AssetID,
		VaultID:             vaultID,
		TreasuryID:          params.TreasuryID,
		TotalAllocation:     params.TotalAllocation,
		RemainingAllocation: params.TotalAllocation,
		UnitPrice:           params.UnitPrice,
		MinAllocation:       params.MinAllocation,
		MaxAllocation:       params.MaxAllocation,
		StartTime:           params.StartTime,
		EndTime:             params.EndTime,
	}
	entry.pool = pool
	entry.mu.Unlock()

	l.logger.Info("pool created",
		zap.String("pool", poolID.Hex()),
		zap.String("asset", params.AssetID.Hex()),
		zap.String("vault", vaultID.Hex()),
		zap.Uint64("total_allocation", params.TotalAllocation),
		zap.Uint64("unit_price", params.UnitPrice),
		zap.Int64("start_time", params.StartTime),
		zap.Int64("end_time", params.EndTime),
	)
	l.record(model.PoolEvent{
		Type:      model.EventPoolCreated,
		PoolID:    poolID.Hex(),
		Actor:     params.Authority.Hex(),
		Remaining: pool.RemainingAllocation,
	})

	return poolID, nil
}

// Participate decrements the remaining allocation by amount if the pool is
// effectively active and the amount fits the per-participant bounds. The
// read-check-decrement sequence is one critical section per pool, so two
// racing calls can never jointly oversell.
func (l *Ledger) Participate(ctx context.Context, poolID, participant common.Address, amount uint64) (model.Receipt, error) {
	entry, err := l.lockEntry(poolID)
	if err != nil {
		return model.Receipt{}, err
	}
	defer entry.mu.Unlock()

	pool := entry.pool
	if err := CanParticipate(pool, l.now()); err != nil {
		return model.Receipt{}, err
	}
	if err := ValidateParticipation(pool, amount); err != nil {
		return model.Receipt{}, err
	}

	if l.adapter != nil {
		cost := amount * pool.UnitPrice
		if err := l.adapter.TransferProceeds(ctx, participant, pool.TreasuryID, cost); err != nil {
			return model.Receipt{}, fmt.Errorf("collect proceeds: %w", err)
		}
		if err := l.adapter.TransferAsset(ctx, pool.VaultID, participant, amount); err != nil {
			return model.Receipt{}, fmt.Errorf("release asset: %w", err)
		}
	}

	entry.pool.RemainingAllocation -= amount

	receipt := model.Receipt{
		PoolID:       poolID,
		Participant:  participant,
		Amount:       amount,
		UnitPrice:    pool.UnitPrice,
		NewRemaining: entry.pool.RemainingAllocation,
	}

	l.logger.Info("participation committed",
		zap.String("pool", poolID.Hex()),
		zap.String("participant", participant.Hex()),
		zap.Uint64("amount", amount),
		zap.Uint64("remaining", receipt.NewRemaining),
	)
	l.record(model.PoolEvent{
		Type:      model.EventParticipation,
		PoolID:    poolID.Hex(),
		Actor:     participant.Hex(),
		Amount:    amount,
		UnitPrice: pool.UnitPrice,
		Remaining: receipt.NewRemaining,
	})

	return receipt, nil
}

// SetPaused flips the pause flag. Only the authority may call it; setting the
// flag to its current value is a no-op success.
func (l *Ledger) SetPaused(ctx context.Context, poolID, caller common.Address, paused bool) error {
	entry, err := l.lockEntry(poolID)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()

	if err := RequireAuthority(entry.pool, caller); err != nil {
		return err
	}
	if err := CanSetPaused(entry.pool); err != nil {
		return err
	}
	if entry.pool.Paused == paused {
		return nil
	}

	entry.pool.Paused = paused

	eventType := model.EventPoolResumed
	if paused {
		eventType = model.EventPoolPaused
	}
	l.logger.Info("pool status changed",
		zap.String("pool", poolID.Hex()),
		zap.Bool("paused", paused),
	)
	l.record(model.PoolEvent{
		Type:      eventType,
		PoolID:    poolID.Hex(),
		Actor:     caller.Hex(),
		Remaining: entry.pool.RemainingAllocation,
		Paused:    paused,
	})

	return nil
}

// Finalize freezes the pool and returns the settlement plan for the unsold
// remainder. Marking the pool finalized and computing the plan happen in the
// same critical section, so settlement can never run twice.
func (l *Ledger) Finalize(ctx context.Context, poolID, caller common.Address) (model.SettlementPlan, error) {
	entry, err := l.lockEntry(poolID)
	if err != nil {
		return model.SettlementPlan{}, err
	}
	defer entry.mu.Unlock()

	if err := RequireAuthority(entry.pool, caller); err != nil {
		return model.SettlementPlan{}, err
	}
	if err := CanFinalize(entry.pool); err != nil {
		return model.SettlementPlan{}, err
	}

	plan := BuildSettlementPlan(poolID, entry.pool)

	if l.adapter != nil {
		if err := l.adapter.TransferAsset(ctx, entry.pool.VaultID, entry.pool.Authority, plan.ReturnToAuthority); err != nil {
			return model.SettlementPlan{}, fmt.Errorf("return unsold supply: %w", err)
		}
	}

	entry.pool.Finalized = true

	l.logger.Info("pool finalized",
		zap.String("pool", poolID.Hex()),
		zap.Uint64("return_to_authority", plan.ReturnToAuthority),
	)
	l.record(model.PoolEvent{
		Type:      model.EventPoolFinalized,
		PoolID:    poolID.Hex(),
		Actor:     caller.Hex(),
		Amount:    plan.ReturnToAuthority,
		Remaining: entry.pool.RemainingAllocation,
		Finalized: true,
	})

	return plan, nil
}

// GetPool returns a consistent snapshot of one pool.
func (l *Ledger) GetPool(poolID common.Address) (model.PoolSnapshot, error) {
	entry, err := l.lockEntry(poolID)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	snap := model.PoolSnapshot{PoolID: poolID, Pool: entry.pool}
	entry.mu.Unlock()

	return snap, nil
}

// ListPools returns snapshots of all pools, ordered by pool id. Each snapshot
// is internally consistent; the set as a whole may be slightly stale with
// respect to concurrent writers.
func (l *Ledger) ListPools() []model.PoolSnapshot {
	l.mu.RLock()
	ids := make([]common.Address, 0, len(l.pools))
	for id := range l.pools {
		ids = append(ids, id)
	}
	l.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i].Bytes(), ids[j].Bytes()) < 0
	})

	snaps := make([]model.PoolSnapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := l.GetPool(id)
		if err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps
}

// Restore installs previously persisted pools, typically at process startup.
// Records violating the allocation invariants or colliding on pool id are
// rejected and nothing is installed.
func (l *Ledger) Restore(snapshots []model.PoolSnapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, snap := range snapshots {
		if snap.RemainingAllocation > snap.TotalAllocation {
			return fmt.Errorf("%w: pool %s remaining %d exceeds total %d", ErrInvalidParameters, snap.PoolID.Hex(), snap.RemainingAllocation, snap.TotalAllocation)
		}
		if _, ok := l.pools[snap.PoolID]; ok {
			return fmt.Errorf("%w: pool %s restored twice", ErrAlreadyExists, snap.PoolID.Hex())
		}
	}
	for _, snap := range snapshots {
		l.pools[snap.PoolID] = &poolEntry{pool: snap.Pool}
	}

	if len(snapshots) > 0 {
		l.logger.Info("pools restored", zap.Int("count", len(snapshots)))
	}
	return nil
}

// lockEntry returns the entry for poolID with its mutex held. An entry whose
// create rolled back after the lookup is skipped and the registry consulted
// again.
func (l *Ledger) lockEntry(poolID common.Address) (*poolEntry, error) {
	for {
		l.mu.RLock()
		entry, ok := l.pools[poolID]
		l.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, poolID.Hex())
		}
		entry.mu.Lock()
		if !entry.removed {
			return entry, nil
		}
		entry.mu.Unlock()
	}
}

// dropEntry rolls back a reserved pool id. The caller still holds entry.mu.
func (l *Ledger) dropEntry(poolID common.Address, entry *poolEntry) {
	l.mu.Lock()
	delete(l.pools, poolID)
	l.mu.Unlock()
	entry.removed = true
	entry.mu.Unlock()
}

func (l *Ledger) resolveAccount(ctx context.Context, kind string, account common.Address) error {
	exists, err := l.adapter.AccountExists(ctx, account)
	if err != nil {
		return fmt.Errorf("resolve %s account %s: %w", kind, account.Hex(), err)
	}
	if !exists {
		return fmt.Errorf("%w: %s account %s does not exist", ErrInvalidParameters, kind, account.Hex())
	}
	return nil
}

// record appends a committed event to the journal. The journal observes
// decisions after the fact; a write failure is logged and never rolls back a
// committed operation.
func (l *Ledger) record(event model.PoolEvent) {
	if l.journal == nil {
		return
	}
	event.At = l.now().UTC().Format(time.RFC3339Nano)
	if err := l.journal.PutEventBatch([]model.PoolEvent{event}); err != nil {
		l.logger.Warn("journal write failed", zap.String("type", event.Type), zap.Error(err))
	}
}
