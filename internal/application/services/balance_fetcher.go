package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/sol-portfolio/internal/config"
	"github.com/bimakw/sol-portfolio/internal/domain/entities"
	"github.com/bimakw/sol-portfolio/internal/domain/repositories"
	"github.com/bimakw/sol-portfolio/internal/infrastructure/solana"
)

// BalanceFetcher reads native and SPL token balances from a list of RPC
// endpoints, moving to the next endpoint after each failed attempt
type BalanceFetcher struct {
	dialer  repositories.ChainDialer
	config  config.SolanaConfig
	metrics *FetchMetrics
	logger  *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewBalanceFetcher creates a new balance fetcher. metrics may be nil.
func NewBalanceFetcher(
	dialer repositories.ChainDialer,
	cfg config.SolanaConfig,
	metrics *FetchMetrics,
	logger *zap.Logger,
) *BalanceFetcher {
	return &BalanceFetcher{
		dialer:  dialer,
		config:  cfg,
		metrics: metrics,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// Fetch returns the balance snapshot of account.
// Attempt i uses endpoint i mod len(endpoints) and is followed, on failure,
// by a wait of RetryDelay*(i+1). After MaxRetries failed attempts a
// *FetchError is returned.
func (f *BalanceFetcher) Fetch(ctx context.Context, account string) (*entities.BalanceSnapshot, error) {
	start := time.Now()
	defer func() {
		f.metrics.observeDuration(time.Since(start).Seconds())
	}()

	endpoints := f.config.Endpoints
	if len(endpoints) == 0 {
		return nil, errors.New("no RPC endpoints configured")
	}

	maxRetries := f.config.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var (
		lastErr  error
		endpoint string
	)

	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("balance fetch cancelled after %d attempts: %w", i, ctx.Err())
		default:
		}

		endpoint = endpoints[i%len(endpoints)]

		snapshot, err := f.FetchOnce(ctx, endpoint, account)
		f.metrics.observeAttempt(endpoint, err)
		if err == nil {
			snapshot.Attempts = i + 1
			if i > 0 {
				f.logger.Info("Balance fetch succeeded after retry",
					zap.Int("attempt", i+1),
					zap.String("endpoint", endpoint),
				)
			}
			return snapshot, nil
		}

		lastErr = err
		f.logger.Warn("Balance fetch attempt failed",
			zap.Int("attempt", i+1),
			zap.Int("max_retries", maxRetries),
			zap.String("endpoint", endpoint),
			zap.String("account", account),
			zap.Error(err),
		)

		if i == maxRetries-1 {
			break
		}

		delay := f.config.RetryDelay * time.Duration(i+1)
		if err := f.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("balance fetch cancelled after %d attempts: %w", i+1, err)
		}
	}

	f.metrics.observeExhausted()
	f.logger.Error("All balance fetch attempts failed",
		zap.Int("attempts", maxRetries),
		zap.String("account", account),
		zap.Error(lastErr),
	)

	return nil, &FetchError{
		Attempts: maxRetries,
		Endpoint: endpoint,
		Err:      lastErr,
	}
}

// FetchOnce performs a single attempt against endpoint, without retries.
// The connection is opened for this attempt only and closed before returning.
func (f *BalanceFetcher) FetchOnce(ctx context.Context, endpoint, account string) (*entities.BalanceSnapshot, error) {
	conn, err := f.dialer.Dial(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			f.logger.Debug("Failed to close RPC connection",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
		}
	}()

	if f.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.config.RequestTimeout)
		defer cancel()
	}

	var (
		lamports uint64
		accounts []entities.TokenAccount
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := conn.GetBalance(gCtx, account)
		if err != nil {
			return fmt.Errorf("failed to get balance: %w", err)
		}
		lamports = balance
		return nil
	})

	g.Go(func() error {
		result, err := conn.GetTokenAccounts(gCtx, account)
		if err != nil {
			return fmt.Errorf("failed to get token accounts: %w", err)
		}
		accounts = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entities.BalanceSnapshot{
		NativeBalance: solana.LamportsToSOL(lamports),
		Holdings:      entities.FilterHoldings(accounts),
		Endpoint:      endpoint,
		Attempts:      1,
	}, nil
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
