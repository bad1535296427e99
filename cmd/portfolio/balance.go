package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/bimakw/sol-portfolio/internal/application/services"
	"github.com/bimakw/sol-portfolio/internal/infrastructure/api"
	"github.com/bimakw/sol-portfolio/internal/infrastructure/solana"
)

const publicKeyLength = 32

type balanceOptions struct {
	apiURL  string
	direct  bool
	json    bool
	timeout time.Duration
}

func newBalanceCmd(a *app) *cobra.Command {
	opts := &balanceOptions{}

	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Show the SOL and token balances of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api", "", "API base URL (default from API_BASE_URL)")
	cmd.Flags().BoolVar(&opts.direct, "direct", false, "skip the API and query the primary RPC endpoint")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the balances as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall time limit")

	return cmd
}

func runBalance(cmd *cobra.Command, a *app, opts *balanceOptions, address string) error {
	if err := validateAddress(address); err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = contextWithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	dialer := solana.NewDialer(a.cfg.Solana, a.logger)
	fetcher := services.NewBalanceFetcher(dialer, a.cfg.Solana, nil, a.logger)

	var balanceAPI services.BalanceAPI
	if !opts.direct {
		baseURL := opts.apiURL
		if baseURL == "" {
			baseURL = a.cfg.API.BaseURL
		}
		balanceAPI = api.NewClient(baseURL, a.cfg.API.ClientTimeout)
	}

	dashboard := services.NewDashboardService(balanceAPI, fetcher, a.cfg.Solana.PrimaryEndpoint(), a.logger)

	result, err := dashboard.Load(ctx, address)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Balances)
	}

	renderBalances(cmd.OutOrStdout(), result)
	return nil
}

// validateAddress checks that address decodes to a 32 byte public key
func validateAddress(address string) error {
	decoded, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", address, err)
	}
	if len(decoded) != publicKeyLength {
		return fmt.Errorf("invalid address %q: expected %d bytes, got %d", address, publicKeyLength, len(decoded))
	}
	return nil
}

func renderBalances(w io.Writer, result *services.DashboardResult) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	balances := result.Balances

	bold.Fprintf(w, "Wallet %s\n", balances.Wallet)
	fmt.Fprintf(w, "SOL: %s\n", green.Sprintf("%.9g", balances.SolBalance))

	if len(balances.Tokens) == 0 {
		fmt.Fprintln(w, "Tokens: none")
	} else {
		fmt.Fprintf(w, "Tokens (%d):\n", len(balances.Tokens))
		for _, token := range balances.Tokens {
			fmt.Fprintf(w, "  %s  %s (raw %s, %d decimals)\n",
				token.Mint,
				green.Sprintf("%g", token.UIAmount),
				token.Amount,
				token.Decimals,
			)
		}
	}

	switch result.Source {
	case services.SourceDirect:
		if result.APIError != nil {
			yellow.Fprintf(w, "Source: direct RPC query (API unavailable: %v)\n", result.APIError)
		} else {
			yellow.Fprintln(w, "Source: direct RPC query")
		}
	default:
		fmt.Fprintln(w, "Source: api")
	}
}
