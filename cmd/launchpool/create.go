package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"launchpool/internal/config"
	"launchpool/internal/model"
)

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	asset, err := parseAddress(mustFlag(cmd, "asset"), "asset")
	if err != nil {
		return err
	}
	treasury, err := parseAddress(mustFlag(cmd, "treasury"), "treasury")
	if err != nil {
		return err
	}
	authority, err := parseAddress(mustFlag(cmd, "authority"), "authority")
	if err != nil {
		return err
	}

	startTime, err := config.ParseTimestamp(mustFlag(cmd, "start"))
	if err != nil {
		return fmt.Errorf("parse start time: %w", err)
	}
	endTime, err := config.ParseTimestamp(mustFlag(cmd, "end"))
	if err != nil {
		return fmt.Errorf("parse end time: %w", err)
	}

	total, _ := cmd.Flags().GetUint64("total")
	price, _ := cmd.Flags().GetUint64("price")
	minAlloc, _ := cmd.Flags().GetUint64("min")
	maxAlloc, _ := cmd.Flags().GetUint64("max")

	params := model.CreateParams{
		AssetID:         asset,
		TreasuryID:      treasury,
		Authority:       authority,
		TotalAllocation: total,
		UnitPrice:       price,
		MinAllocation:   minAlloc,
		MaxAllocation:   maxAlloc,
		StartTime:       startTime,
		EndTime:         endTime,
	}

	poolID, err := r.ledger.Create(ctx, params)
	if err != nil {
		return err
	}
	if err := r.persist(ctx); err != nil {
		return err
	}

	r.logger.Info("pool ready",
		zap.String("pool", poolID.Hex()),
		zap.String("asset", asset.Hex()),
	)
	fmt.Println(poolID.Hex())
	return nil
}

func mustFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}
