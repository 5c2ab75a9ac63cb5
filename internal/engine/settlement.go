package engine

import (
	"github.com/ethereum/go-ethereum/common"

	"launchpool/internal/model"
)

// BuildSettlementPlan computes the unsold remainder owed back to the
// authority from the vault. Proceeds were moved incrementally with each
// committed participation, so the plan covers supply only.
func BuildSettlementPlan(poolID common.Address, pool model.Pool) model.SettlementPlan {
	return model.SettlementPlan{
		PoolID:            poolID,
		ReturnToAuthority: pool.RemainingAllocation,
	}
}
