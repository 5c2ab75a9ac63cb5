package model

// Journal event types, one per committed transition.
const (
	EventPoolCreated   = "pool_created"
	EventParticipation = "participation"
	EventPoolPaused    = "pool_paused"
	EventPoolResumed   = "pool_resumed"
	EventPoolFinalized = "pool_finalized"
)

// PoolEvent is the journal representation of a committed state transition.
type PoolEvent struct {
	Type      string `json:"type"`
	PoolID    string `json:"pool_id"`
	Actor     string `json:"actor"`
	Amount    uint64 `json:"amount,omitempty"`
	UnitPrice uint64 `json:"unit_price,omitempty"`
	Remaining uint64 `json:"remaining"`
	Paused    bool   `json:"paused"`
	Finalized bool   `json:"finalized"`
	At        string `json:"at"`
}
