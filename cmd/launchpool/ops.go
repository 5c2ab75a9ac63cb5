package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runParticipate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	poolID, err := parseAddress(mustFlag(cmd, "pool"), "pool")
	if err != nil {
		return err
	}
	participant, err := parseAddress(mustFlag(cmd, "participant"), "participant")
	if err != nil {
		return err
	}
	amount, _ := cmd.Flags().GetUint64("amount")

	receipt, err := r.ledger.Participate(ctx, poolID, participant, amount)
	if err != nil {
		return err
	}
	if err := r.persist(ctx); err != nil {
		return err
	}

	return printJSON(receipt)
}

func runPause(cmd *cobra.Command, _ []string) error {
	return runSetPaused(cmd, true)
}

func runResume(cmd *cobra.Command, _ []string) error {
	return runSetPaused(cmd, false)
}

func runSetPaused(cmd *cobra.Command, paused bool) error {
	ctx := cmd.Context()

	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	poolID, err := parseAddress(mustFlag(cmd, "pool"), "pool")
	if err != nil {
		return err
	}
	caller, err := parseAddress(mustFlag(cmd, "caller"), "caller")
	if err != nil {
		return err
	}

	if err := r.ledger.SetPaused(ctx, poolID, caller, paused); err != nil {
		return err
	}
	if err := r.persist(ctx); err != nil {
		return err
	}

	r.logger.Info("pool status set",
		zap.String("pool", poolID.Hex()),
		zap.Bool("paused", paused),
	)
	return nil
}

func runFinalize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	poolID, err := parseAddress(mustFlag(cmd, "pool"), "pool")
	if err != nil {
		return err
	}
	caller, err := parseAddress(mustFlag(cmd, "caller"), "caller")
	if err != nil {
		return err
	}

	plan, err := r.ledger.Finalize(ctx, poolID, caller)
	if err != nil {
		return err
	}
	if err := r.persist(ctx); err != nil {
		return err
	}

	return printJSON(plan)
}

func printJSON(value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
