package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bimakw/sol-portfolio/internal/infrastructure/solana"
)

func newEndpointsCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "List the configured RPC endpoints and probe their health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := contextWithTimeout(cmd.Context(), timeout)
			defer cancel()

			checker := solana.NewEndpointChecker(a.cfg.Solana.Endpoints, a.logger)
			statuses := checker.CheckEndpoints(ctx)

			renderEndpoints(cmd.OutOrStdout(), statuses)

			fmt.Fprintf(cmd.OutOrStdout(), "\nCommitment: %s, retries: %d, retry delay: %s, request timeout: %s\n",
				a.cfg.Solana.Commitment,
				a.cfg.Solana.MaxRetries,
				a.cfg.Solana.RetryDelay,
				a.cfg.Solana.RequestTimeout,
			)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "probe timeout")

	return cmd
}

func renderEndpoints(w io.Writer, statuses []solana.EndpointStatus) {
	for i, status := range statuses {
		if status.Healthy() {
			fmt.Fprintf(w, "%d. %s  %s (%s)\n", i+1, status.Endpoint,
				color.GreenString("ok"), status.Latency.Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(w, "%d. %s  %s: %v\n", i+1, status.Endpoint, color.RedString("unhealthy"), status.Err)
	}
}

func contextWithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}
