package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "evmconfirm",
		Short:        "EVM transaction confirmation renderer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Replay service events and print the confirmation screen",
		RunE:  runRender,
	}

	renderCmd.Flags().String("in", "", "input fixture JSONL")
	renderCmd.Flags().String("out", "", "optional output JSONL of rendered frames")
	renderCmd.Flags().String("rpc", "", "RPC URL for token metadata lookups")
	renderCmd.Flags().String("locale", "en", "display language (BCP 47)")
	renderCmd.Flags().String("locale-file", "", "YAML file with message overrides")
	renderCmd.Flags().String("own-address", "", "address of the sending account")
	renderCmd.Flags().StringToString("labels", nil, "address labels (comma-separated address=name)")
	renderCmd.Flags().Bool("send", false, "press send once the transaction is ready")
	renderCmd.Flags().Bool("color", false, "colorize printed screens")
	renderCmd.Flags().Int("max-retries", 3, "maximum RPC retry attempts")
	renderCmd.Flags().Duration("retry-backoff", 250*time.Millisecond, "initial RPC retry backoff")
	renderCmd.Flags().Float64("rpc-rate", 5, "RPC requests per second, 0 disables limiting")
	renderCmd.Flags().Int("rpc-burst", 10, "RPC request burst")
	renderCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(renderCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
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
