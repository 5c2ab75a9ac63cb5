package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "launchpool",
		Short:        "Token sale pool engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sale pool for an asset",
		RunE:  runCreate,
	}
	createCmd.Flags().String("asset", "", "sale asset account")
	createCmd.Flags().String("treasury", "", "proceeds treasury account")
	createCmd.Flags().String("authority", "", "pool authority account")
	createCmd.Flags().Uint64("total", 0, "total allocation")
	createCmd.Flags().Uint64("price", 0, "unit price (smallest unit)")
	createCmd.Flags().Uint64("min", 0, "min allocation per participation")
	createCmd.Flags().Uint64("max", 0, "max allocation per participation")
	createCmd.Flags().String("start", "", "sale start (unix seconds or RFC3339)")
	createCmd.Flags().String("end", "", "sale end (unix seconds or RFC3339)")
	addRuntimeFlags(createCmd)
	root.AddCommand(createCmd)

	participateCmd := &cobra.Command{
		Use:   "participate",
		Short: "Buy into an active pool",
		RunE:  runParticipate,
	}
	participateCmd.Flags().String("pool", "", "pool id")
	participateCmd.Flags().String("participant", "", "participant account")
	participateCmd.Flags().Uint64("amount", 0, "allocation units to buy")
	addRuntimeFlags(participateCmd)
	root.AddCommand(participateCmd)

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause an active pool",
		RunE:  runPause,
	}
	pauseCmd.Flags().String("pool", "", "pool id")
	pauseCmd.Flags().String("caller", "", "authority account")
	addRuntimeFlags(pauseCmd)
	root.AddCommand(pauseCmd)

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused pool",
		RunE:  runResume,
	}
	resumeCmd.Flags().String("pool", "", "pool id")
	resumeCmd.Flags().String("caller", "", "authority account")
	addRuntimeFlags(resumeCmd)
	root.AddCommand(resumeCmd)

	finalizeCmd := &cobra.Command{
		Use:   "finalize",
		Short: "Finalize a pool and compute the settlement plan",
		RunE:  runFinalize,
	}
	finalizeCmd.Flags().String("pool", "", "pool id")
	finalizeCmd.Flags().String("caller", "", "authority account")
	addRuntimeFlags(finalizeCmd)
	root.AddCommand(finalizeCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print one pool snapshot",
		RunE:  runShow,
	}
	showCmd.Flags().String("pool", "", "pool id")
	addRuntimeFlags(showCmd)
	root.AddCommand(showCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print all pool snapshots",
		RunE:  runList,
	}
	addRuntimeFlags(listCmd)
	root.AddCommand(listCmd)

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Race concurrent participants against one in-memory pool",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Uint64("total", 1000, "total allocation")
	simulateCmd.Flags().Uint64("price", 1, "unit price")
	simulateCmd.Flags().Uint64("min", 1, "min allocation")
	simulateCmd.Flags().Uint64("max", 100, "max allocation")
	simulateCmd.Flags().Int("participants", 50, "concurrent participants")
	simulateCmd.Flags().Uint64("amount", 30, "amount per participant")
	simulateCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(simulateCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRuntimeFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "chain RPC URL for account resolution")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("journal", "./data/pool_events.jsonl", "pool event journal path")
	cmd.Flags().String("snapshot", "./data/pools.json", "pool snapshot file path")
	cmd.Flags().Int("max-retries", 5, "maximum RPC retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial RPC retry backoff")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func parseAddress(input, name string) (common.Address, error) {
	if input == "" {
		return common.Address{}, fmt.Errorf("%s is required", name)
	}
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid %s address: %s", name, input)
	}
	return common.HexToAddress(input), nil
}
