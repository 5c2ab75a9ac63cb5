package model

import (
	"github.com/ethereum/go-ethereum/common"
)

// Receipt confirms a committed participation.
type Receipt struct {
	PoolID       common.Address `json:"pool_id"`
	Participant  common.Address `json:"participant"`
	Amount       uint64         `json:"amount"`
	UnitPrice    uint64         `json:"unit_price"`
	NewRemaining uint64         `json:"new_remaining"`
}

// SettlementPlan describes the unsold supply owed back to the authority
// once a pool is finalized.
type SettlementPlan struct {
	PoolID            common.Address `json:"pool_id"`
	ReturnToAuthority uint64         `json:"return_to_authority"`
}
