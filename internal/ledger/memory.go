package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Memory is an in-process ledger keeping asset and proceeds balances per
// account. Holding accounts are created on first credit; debits require
// sufficient balance. Used by tests and the simulate command.
type Memory struct {
	mu       sync.Mutex
	accounts map[common.Address]struct{}
	assets   map[common.Address]uint64
	proceeds map[common.Address]uint64
}

func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[common.Address]struct{}),
		assets:   make(map[common.Address]uint64),
		proceeds: make(map[common.Address]uint64),
	}
}

// Register makes accounts known to the ledger without funding them.
func (m *Memory) Register(accounts ...common.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range accounts {
		m.accounts[account] = struct{}{}
	}
}

// MintAsset credits sale-asset units to an account, creating it if needed.
func (m *Memory) MintAsset(account common.Address, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account] = struct{}{}
	m.assets[account] += amount
}

// MintProceeds credits payment units to an account, creating it if needed.
func (m *Memory) MintProceeds(account common.Address, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account] = struct{}{}
	m.proceeds[account] += amount
}

// AssetBalance returns the sale-asset balance of an account.
func (m *Memory) AssetBalance(account common.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assets[account]
}

// ProceedsBalance returns the payment-unit balance of an account.
func (m *Memory) ProceedsBalance(account common.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.proceeds[account]
}

func (m *Memory) AccountExists(_ context.Context, account common.Address) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.accounts[account]
	return ok, nil
}

func (m *Memory) TransferProceeds(_ context.Context, from, to common.Address, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.proceeds[from] < amount {
		return fmt.Errorf("insufficient proceeds balance on %s: have %d, need %d", from.Hex(), m.proceeds[from], amount)
	}
	m.proceeds[from] -= amount
	m.accounts[to] = struct{}{}
	m.proceeds[to] += amount
	return nil
}

func (m *Memory) TransferAsset(_ context.Context, from, to common.Address, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.assets[from] < amount {
		return fmt.Errorf("insufficient asset balance on %s: have %d, need %d", from.Hex(), m.assets[from], amount)
	}
	m.assets[from] -= amount
	m.accounts[to] = struct{}{}
	m.assets[to] += amount
	return nil
}
