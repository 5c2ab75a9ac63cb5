package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpool/internal/model"
)

// Store provides Postgres persistence for pool snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPools inserts or updates pool snapshots. Immutable fields are written
// once; the mutable counters and flags follow each committed operation.
func (s *Store) UpsertPools(ctx context.Context, pools []model.PoolSnapshot) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, snap := range pools {
		batch.Queue(upsertPoolSQL,
			snap.PoolID.Hex(),
			snap.Authority.Hex(),
			snap.AssetID.Hex(),
			snap.VaultID.Hex(),
			snap.TreasuryID.Hex(),
			int64(snap.TotalAllocation),
			int64(snap.RemainingAllocation),
			int64(snap.UnitPrice),
			int64(snap.MinAllocation),
			int64(snap.MaxAllocation),
			snap.StartTime,
			snap.EndTime,
			snap.Paused,
			snap.Finalized,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pools {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

const poolColumns = `
	pool_id, authority, asset_id, vault_id, treasury_id,
	total_allocation, remaining_allocation, unit_price,
	min_allocation, max_allocation, start_time, end_time,
	paused, finalized
`

const upsertPoolSQL = `
	INSERT INTO pools (
		pool_id, authority, asset_id, vault_id, treasury_id,
		total_allocation, remaining_allocation, unit_price,
		min_allocation, max_allocation, start_time, end_time,
		paused, finalized, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,now(),now())
	ON CONFLICT (pool_id)
	DO UPDATE SET
		remaining_allocation = EXCLUDED.remaining_allocation,
		paused = EXCLUDED.paused,
		finalized = EXCLUDED.finalized,
		updated_at = now()
`

// ListPools returns all persisted pool snapshots ordered by pool id.
func (s *Store) ListPools(ctx context.Context) ([]model.PoolSnapshot, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+poolColumns+` FROM pools ORDER BY pool_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pools []model.PoolSnapshot
	for rows.Next() {
		snap, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		pools = append(pools, snap)
	}
	return pools, rows.Err()
}

// GetPool returns one persisted snapshot. The second return is false when no
// record exists for the id.
func (s *Store) GetPool(ctx context.Context, poolID common.Address) (model.PoolSnapshot, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+poolColumns+` FROM pools WHERE pool_id=$1`, poolID.Hex())
	snap, err := scanPool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PoolSnapshot{}, false, nil
		}
		return model.PoolSnapshot{}, false, err
	}
	return snap, true, nil
}

// LoadState returns the journal offset for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var offset uint64
	row := s.pool.QueryRow(ctx, `SELECT journal_offset FROM launchpool_state WHERE name=$1`, name)
	if err := row.Scan(&offset); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return offset, true, nil
}

// SaveState upserts the journal offset for a name.
func (s *Store) SaveState(ctx context.Context, name string, offset uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO launchpool_state (name, journal_offset, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET journal_offset = EXCLUDED.journal_offset, updated_at = now()
	`, name, offset)
	return err
}

func scanPool(row pgx.Row) (model.PoolSnapshot, error) {
	var poolID, authority, assetID, vaultID, treasuryID string
	var total, remaining, unitPrice, minAlloc, maxAlloc, startTime, endTime int64
	var paused, finalized bool
	err := row.Scan(
		&poolID, &authority, &assetID, &vaultID, &treasuryID,
		&total, &remaining, &unitPrice, &minAlloc, &maxAlloc,
		&startTime, &endTime, &paused, &finalized,
	)
	if err != nil {
		return model.PoolSnapshot{}, err
	}

	return model.PoolSnapshot{
		PoolID: common.HexToAddress(poolID),
		Pool: model.Pool{
			Authority:           common.HexToAddress(authority),
			AssetID:             common.HexToAddress(assetID),
			VaultID:             common.HexToAddress(vaultID),
			TreasuryID:          common.HexToAddress(treasuryID),
			TotalAllocation:     uint64(total),
			RemainingAllocation: uint64(remaining),
			UnitPrice:           uint64(unitPrice),
			MinAllocation:       uint64(minAlloc),
			MaxAllocation:       uint64(maxAlloc),
			StartTime:           startTime,
			EndTime:             endTime,
			Paused:              paused,
			Finalized:           finalized,
		},
	}, nil
}
