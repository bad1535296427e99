package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/sol-portfolio/internal/config"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show Solana wallet balances",
		Long: `Portfolio shows the SOL balance and SPL token holdings of a wallet.

Balances are read through a running sol-portfolio API. When the API is
unreachable a single direct query is made against the first configured
RPC endpoint.

Configuration is read from the same environment variables as the API
(SOLANA_RPC_ENDPOINTS, SOLANA_MAX_RETRIES, API_BASE_URL, ...).

Examples:
  portfolio balance 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM
  portfolio balance <address> --direct
  portfolio endpoints`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(a.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log retries and fallbacks to stderr")

	rootCmd.AddCommand(newBalanceCmd(a))
	rootCmd.AddCommand(newEndpointsCmd(a))

	return rootCmd
}

// newLogger logs to stderr so stdout stays clean for balances
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
