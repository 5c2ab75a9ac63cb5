package model

import (
	"github.com/ethereum/go-ethereum/common"
)

// CreateParams carries the caller-supplied inputs for pool creation.
// Pool and vault identifiers are derived, never supplied.
type CreateParams struct {
	AssetID         common.Address `json:"asset_id"`
	TreasuryID      common.Address `json:"treasury_id"`
	Authority       common.Address `json:"authority"`
	TotalAllocation uint64         `json:"total_allocation"`
	UnitPrice       uint64         `json:"unit_price"`
	MinAllocation   uint64         `json:"min_allocation"`
	MaxAllocation   uint64         `json:"max_allocation"`
	StartTime       int64          `json:"start_time"`
	EndTime         int64          `json:"end_time"`
}
