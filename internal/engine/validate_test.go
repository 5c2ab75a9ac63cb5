package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"launchpool/internal/model"
)

func validParams() model.CreateParams {
	return model.CreateParams{
		AssetID:         common.HexToAddress("0x0000000000000000000000000000000000000001"),
		TreasuryID:      common.HexToAddress("0x0000000000000000000000000000000000000002"),
		Authority:       common.HexToAddress("0x0000000000000000000000000000000000000003"),
		TotalAllocation: 1000,
		UnitPrice:       5,
		MinAllocation:   10,
		MaxAllocation:   200,
		StartTime:       1000,
		EndTime:         2000,
	}
}

func TestValidateCreate(t *testing.T) {
	if err := ValidateCreate(validParams()); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*model.CreateParams)
	}{
		{"zero total", func(p *model.CreateParams) { p.TotalAllocation = 0 }},
		{"zero price", func(p *model.CreateParams) { p.UnitPrice = 0 }},
		{"zero min", func(p *model.CreateParams) { p.MinAllocation = 0 }},
		{"min above max", func(p *model.CreateParams) { p.MinAllocation = 300 }},
		{"max above total", func(p *model.CreateParams) { p.MaxAllocation = 1001 }},
		{"start equals end", func(p *model.CreateParams) { p.StartTime = p.EndTime }},
		{"start after end", func(p *model.CreateParams) { p.StartTime = 3000 }},
		{"zero asset", func(p *model.CreateParams) { p.AssetID = common.Address{} }},
		{"zero treasury", func(p *model.CreateParams) { p.TreasuryID = common.Address{} }},
		{"zero authority", func(p *model.CreateParams) { p.Authority = common.Address{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			if err := ValidateCreate(params); !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestValidateParticipation(t *testing.T) {
	pool := basePool()

	if err := ValidateParticipation(pool, 50); err != nil {
		t.Fatalf("valid amount rejected: %v", err)
	}
	if err := ValidateParticipation(pool, pool.MinAllocation); err != nil {
		t.Fatalf("amount at min rejected: %v", err)
	}
	if err := ValidateParticipation(pool, pool.MaxAllocation); err != nil {
		t.Fatalf("amount at max rejected: %v", err)
	}

	if err := ValidateParticipation(pool, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if err := ValidateParticipation(pool, pool.MinAllocation-1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount below min, got %v", err)
	}
	if err := ValidateParticipation(pool, pool.MaxAllocation+1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount above max, got %v", err)
	}

	// Max bound is checked before remaining, so an over-max request fails
	// InvalidAmount regardless of remaining allocation.
	drained := pool
	drained.RemainingAllocation = 5
	if err := ValidateParticipation(drained, pool.MaxAllocation+1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount above max with low remaining, got %v", err)
	}
	if err := ValidateParticipation(drained, 50); !errors.Is(err, ErrInsufficientAllocation) {
		t.Fatalf("expected ErrInsufficientAllocation, got %v", err)
	}
}

func TestValidateParticipationOverflow(t *testing.T) {
	pool := model.Pool{
		TotalAllocation:     math.MaxUint64,
		RemainingAllocation: math.MaxUint64,
		UnitPrice:           3,
		MinAllocation:       1,
		MaxAllocation:       math.MaxUint64,
	}
	if err := ValidateParticipation(pool, math.MaxUint64/2); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount on cost overflow, got %v", err)
	}
}

func TestRequireAuthority(t *testing.T) {
	pool := basePool()
	pool.Authority = common.HexToAddress("0x0000000000000000000000000000000000000003")

	if err := RequireAuthority(pool, pool.Authority); err != nil {
		t.Fatalf("authority rejected: %v", err)
	}
	other := common.HexToAddress("0x0000000000000000000000000000000000000004")
	if err := RequireAuthority(pool, other); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
