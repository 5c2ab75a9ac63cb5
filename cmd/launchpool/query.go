package main

import (
	"github.com/spf13/cobra"
)

func runShow(cmd *cobra.Command, _ []string) error {
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

	snap, err := r.ledger.GetPool(poolID)
	if err != nil {
		return err
	}
	return printJSON(snap)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	return printJSON(r.ledger.ListPools())
}
