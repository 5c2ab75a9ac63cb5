package main

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"launchpool/internal/engine"
	"launchpool/internal/ledger"
	"launchpool/internal/model"
)

// runSimulate races concurrent participants against a fresh in-memory pool
// and reports how the allocation counter held up.
func runSimulate(cmd *cobra.Command, _ []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	total, _ := cmd.Flags().GetUint64("total")
	price, _ := cmd.Flags().GetUint64("price")
	minAlloc, _ := cmd.Flags().GetUint64("min")
	maxAlloc, _ := cmd.Flags().GetUint64("max")
	participants, _ := cmd.Flags().GetInt("participants")
	amount, _ := cmd.Flags().GetUint64("amount")

	if participants <= 0 {
		return fmt.Errorf("participants must be greater than zero")
	}

	authority := common.HexToAddress("0x0000000000000000000000000000000000000a01")
	asset := common.HexToAddress("0x0000000000000000000000000000000000000a02")
	treasury := common.HexToAddress("0x0000000000000000000000000000000000000a03")

	adapter := ledger.NewMemory()
	adapter.Register(asset, treasury)
	adapter.MintAsset(authority, total)

	pools := engine.NewLedger(engine.Config{Adapter: adapter, Logger: logger})

	now := time.Now().Unix()
	poolID, err := pools.Create(cmd.Context(), model.CreateParams{
		AssetID:         asset,
		TreasuryID:      treasury,
		Authority:       authority,
		TotalAllocation: total,
		UnitPrice:       price,
		MinAllocation:   minAlloc,
		MaxAllocation:   maxAlloc,
		StartTime:       now - 1,
		EndTime:         now + 3600,
	})
	if err != nil {
		return err
	}

	logger.Info("simulation start",
		zap.String("pool", poolID.Hex()),
		zap.Uint64("total", total),
		zap.Int("participants", participants),
		zap.Uint64("amount", amount),
	)

	var committed, soldOut, rejected atomic.Int64
	group, ctx := errgroup.WithContext(cmd.Context())
	for i := 0; i < participants; i++ {
		user := common.BytesToAddress([]byte{0x0b, byte(i >> 8), byte(i)})
		adapter.MintProceeds(user, amount*price)
		group.Go(func() error {
			_, err := pools.Participate(ctx, poolID, user, amount)
			switch {
			case err == nil:
				committed.Add(1)
			case errors.Is(err, engine.ErrInsufficientAllocation):
				soldOut.Add(1)
			case errors.Is(err, engine.ErrInvalidAmount), errors.Is(err, engine.ErrNotActive):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	snap, err := pools.GetPool(poolID)
	if err != nil {
		return err
	}

	sold := snap.TotalAllocation - snap.RemainingAllocation
	if sold != uint64(committed.Load())*amount {
		return fmt.Errorf("counter drift: sold %d but %d commits of %d", sold, committed.Load(), amount)
	}

	logger.Info("simulation complete",
		zap.Int64("committed", committed.Load()),
		zap.Int64("sold_out", soldOut.Load()),
		zap.Int64("rejected", rejected.Load()),
		zap.Uint64("remaining", snap.RemainingAllocation),
		zap.Uint64("treasury_proceeds", adapter.ProceedsBalance(treasury)),
	)
	return nil
}
