package chain

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client resolves accounts against a live chain over RPC. It satisfies the
// engine's ledger adapter: existence checks hit the chain, while the transfer
// hooks only acknowledge the intent, since submitting signed transfers is the
// caller's responsibility.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	maxRetries   int
	retryBackoff time.Duration

	mu          sync.RWMutex
	existsCache map[common.Address]bool
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string, maxRetries int, retryBackoff time.Duration) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient:    rpcClient,
		ethClient:    ethclient.NewClient(rpcClient),
		maxRetries:   maxRetries,
		retryBackoff: retryBackoff,
		existsCache:  make(map[common.Address]bool),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// ChainID returns the chain ID.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// AccountExists reports whether the account has any on-chain footprint
// (balance, nonce, or code). Positive results are cached.
func (c *Client) AccountExists(ctx context.Context, account common.Address) (bool, error) {
	c.mu.RLock()
	exists, ok := c.existsCache[account]
	c.mu.RUnlock()
	if ok && exists {
		return true, nil
	}

	err := retryRPC(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		var err error
		exists, err = c.lookupAccount(ctx, account)
		return err
	})
	if err != nil {
		return false, err
	}

	if exists {
		c.mu.Lock()
		c.existsCache[account] = true
		c.mu.Unlock()
	}
	return exists, nil
}

// TransferProceeds acknowledges a proceeds movement decided by the engine.
// The actual value transfer is submitted externally.
func (c *Client) TransferProceeds(ctx context.Context, from, to common.Address, amount uint64) error {
	return nil
}

// TransferAsset acknowledges an asset movement decided by the engine.
// The actual value transfer is submitted externally.
func (c *Client) TransferAsset(ctx context.Context, from, to common.Address, amount uint64) error {
	return nil
}

func (c *Client) lookupAccount(ctx context.Context, account common.Address) (bool, error) {
	balance, err := c.ethClient.BalanceAt(ctx, account, nil)
	if err != nil {
		return false, err
	}
	if balance.Sign() > 0 {
		return true, nil
	}

	nonce, err := c.ethClient.NonceAt(ctx, account, nil)
	if err != nil {
		return false, err
	}
	if nonce > 0 {
		return true, nil
	}

	code, err := c.ethClient.CodeAt(ctx, account, nil)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}
