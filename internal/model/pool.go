package model

import (
	"github.com/ethereum/go-ethereum/common"
)

// Pool is the record governing one token sale's parameters and counters.
// Identity and pricing fields are fixed at creation; only RemainingAllocation,
// Paused and Finalized ever change afterwards.
type Pool struct {
	Authority           common.Address `json:"authority"`
	AssetID             common.Address `json:"asset_id"`
	VaultID             common.Address `json:"vault_id"`
	TreasuryID          common.Address `json:"treasury_id"`
	TotalAllocation     uint64         `json:"total_allocation"`
	RemainingAllocation uint64         `json:"remaining_allocation"`
	UnitPrice           uint64         `json:"unit_price"`
	MinAllocation       uint64         `json:"min_allocation"`
	MaxAllocation       uint64         `json:"max_allocation"`
	StartTime           int64          `json:"start_time"`
	EndTime             int64          `json:"end_time"`
	Paused              bool           `json:"paused"`
	Finalized           bool           `json:"finalized"`
}

// PoolSnapshot is a read-only copy of a pool record keyed by its derived id.
type PoolSnapshot struct {
	PoolID common.Address `json:"pool_id"`
	Pool
}
