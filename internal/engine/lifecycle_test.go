package engine

import (
	"errors"
	"testing"
	"time"

	"launchpool/internal/model"
)

func basePool() model.Pool {
	return model.Pool{
		TotalAllocation:     1000,
		RemainingAllocation: 1000,
		UnitPrice:           5,
		MinAllocation:       10,
		MaxAllocation:       200,
		StartTime:           1000,
		EndTime:             2000,
	}
}

func TestEffectivePhase(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Pool)
		now    int64
		want   Phase
	}{
		{"before window", nil, 500, PhaseUpcoming},
		{"at start", nil, 1000, PhaseActive},
		{"inside window", nil, 1500, PhaseActive},
		{"at end", nil, 2000, PhaseEnded},
		{"after end", nil, 3000, PhaseEnded},
		{"paused inside window", func(p *model.Pool) { p.Paused = true }, 1500, PhasePaused},
		{"paused before window", func(p *model.Pool) { p.Paused = true }, 500, PhaseUpcoming},
		{"finalized wins over time", func(p *model.Pool) { p.Finalized = true }, 1500, PhaseFinalized},
		{"finalized after end", func(p *model.Pool) { p.Finalized = true }, 3000, PhaseFinalized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pool := basePool()
			if tc.mutate != nil {
				tc.mutate(&pool)
			}
			got := EffectivePhase(pool, time.Unix(tc.now, 0))
			if got != tc.want {
				t.Fatalf("phase at %d: got %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestCanParticipateGates(t *testing.T) {
	pool := basePool()

	if err := CanParticipate(pool, time.Unix(1500, 0)); err != nil {
		t.Fatalf("unexpected error inside window: %v", err)
	}
	if err := CanParticipate(pool, time.Unix(500, 0)); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive before start, got %v", err)
	}
	if err := CanParticipate(pool, time.Unix(2000, 0)); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive after end, got %v", err)
	}

	pool.Paused = true
	if err := CanParticipate(pool, time.Unix(1500, 0)); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive while paused, got %v", err)
	}

	pool.Paused = false
	pool.Finalized = true
	if err := CanParticipate(pool, time.Unix(1500, 0)); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
	}
}

func TestPauseAndFinalizeGates(t *testing.T) {
	pool := basePool()

	if err := CanSetPaused(pool); err != nil {
		t.Fatalf("unexpected pause gate error: %v", err)
	}
	if err := CanFinalize(pool); err != nil {
		t.Fatalf("unexpected finalize gate error: %v", err)
	}

	pool.Finalized = true
	if err := CanSetPaused(pool); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for pause, got %v", err)
	}
	if err := CanFinalize(pool); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for finalize, got %v", err)
	}
}
