package engine

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"

	"launchpool/internal/model"
)

// ValidateCreate checks the value-level constraints on pool creation inputs.
// Account existence is checked separately through the ledger adapter.
func ValidateCreate(params model.CreateParams) error {
	if params.TotalAllocation == 0 {
		return fmt.Errorf("%w: total allocation must be greater than zero", ErrInvalidParameters)
	}
	if params.UnitPrice == 0 {
		return fmt.Errorf("%w: unit price must be greater than zero", ErrInvalidParameters)
	}
	if params.MinAllocation == 0 {
		return fmt.Errorf("%w: min allocation must be greater than zero", ErrInvalidParameters)
	}
	if params.MinAllocation > params.MaxAllocation {
		return fmt.Errorf("%w: min allocation %d exceeds max allocation %d", ErrInvalidParameters, params.MinAllocation, params.MaxAllocation)
	}
	if params.MaxAllocation > params.TotalAllocation {
		return fmt.Errorf("%w: max allocation %d exceeds total allocation %d", ErrInvalidParameters, params.MaxAllocation, params.TotalAllocation)
	}
	if params.StartTime >= params.EndTime {
		return fmt.Errorf("%w: start time %d is not before end time %d", ErrInvalidParameters, params.StartTime, params.EndTime)
	}
	if params.AssetID == (common.Address{}) {
		return fmt.Errorf("%w: asset id is required", ErrInvalidParameters)
	}
	if params.TreasuryID == (common.Address{}) {
		return fmt.Errorf("%w: treasury id is required", ErrInvalidParameters)
	}
	if params.Authority == (common.Address{}) {
		return fmt.Errorf("%w: authority is required", ErrInvalidParameters)
	}
	return nil
}

// ValidateParticipation checks a requested amount against the pool's fixed
// bounds and its current remaining allocation. Pure; never mutates the pool.
func ValidateParticipation(pool model.Pool, amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}
	if amount < pool.MinAllocation || amount > pool.MaxAllocation {
		return fmt.Errorf("%w: amount %d outside [%d, %d]", ErrInvalidAmount, amount, pool.MinAllocation, pool.MaxAllocation)
	}
	if pool.UnitPrice > 0 && amount > math.MaxUint64/pool.UnitPrice {
		return fmt.Errorf("%w: amount %d overflows at unit price %d", ErrInvalidAmount, amount, pool.UnitPrice)
	}
	if amount > pool.RemainingAllocation {
		return fmt.Errorf("%w: amount %d exceeds remaining %d", ErrInsufficientAllocation, amount, pool.RemainingAllocation)
	}
	return nil
}

// RequireAuthority checks that the caller is the pool authority.
func RequireAuthority(pool model.Pool, caller common.Address) error {
	if caller != pool.Authority {
		return fmt.Errorf("%w: caller %s", ErrUnauthorized, caller.Hex())
	}
	return nil
}
