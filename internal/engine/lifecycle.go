package engine

import (
	"time"

	"launchpool/internal/model"
)

// Phase is the effective lifecycle state of a pool, derived from the stored
// flags and the wall clock. It is computed fresh on every call and never
// cached, since time advances independently of any operation.
type Phase string

const (
	PhaseUpcoming  Phase = "upcoming"
	PhaseActive    Phase = "active"
	PhasePaused    Phase = "paused"
	PhaseEnded     Phase = "ended"
	PhaseFinalized Phase = "finalized"
)

// EffectivePhase derives the lifecycle phase of a pool at the given instant.
func EffectivePhase(pool model.Pool, now time.Time) Phase {
	switch {
	case pool.Finalized:
		return PhaseFinalized
	case now.Unix() >= pool.EndTime:
		return PhaseEnded
	case now.Unix() < pool.StartTime:
		return PhaseUpcoming
	case pool.Paused:
		return PhasePaused
	default:
		return PhaseActive
	}
}

// CanParticipate gates participation on the effective phase: the time window
// must be open and the pool neither paused nor finalized.
func CanParticipate(pool model.Pool, now time.Time) error {
	if pool.Finalized {
		return ErrAlreadyFinalized
	}
	if EffectivePhase(pool, now) != PhaseActive {
		return ErrNotActive
	}
	return nil
}

// CanSetPaused gates pause and resume. Pausing an already-ended pool is
// allowed but has no effect on participation, which is independently
// time-gated.
func CanSetPaused(pool model.Pool) error {
	if pool.Finalized {
		return ErrAlreadyFinalized
	}
	return nil
}

// CanFinalize gates the one-way transition into the terminal phase,
// reachable from any non-terminal phase.
func CanFinalize(pool model.Pool) error {
	if pool.Finalized {
		return ErrAlreadyFinalized
	}
	return nil
}
