package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/sol-portfolio/internal/domain/entities"
	"github.com/bimakw/sol-portfolio/internal/infrastructure/cache"
)

// ResponseCache is the optional cache in front of the balance fetcher
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// PortfolioService provides business logic for wallet balances
type PortfolioService struct {
	fetcher  *BalanceFetcher
	cache    ResponseCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPortfolioService creates a new portfolio service.
// A nil cache or a zero cacheTTL disables caching.
func NewPortfolioService(
	fetcher *BalanceFetcher,
	responseCache ResponseCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *PortfolioService {
	return &PortfolioService{
		fetcher:  fetcher,
		cache:    responseCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// BalanceResponse is the API representation of a wallet's balances
type BalanceResponse struct {
	SolBalance float64                 `json:"solBalance"`
	Tokens     []entities.TokenHolding `json:"tokens"`
	Wallet     string                  `json:"wallet"`
}

// ErrorResponse is the API representation of a failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewBalanceResponse maps a snapshot to the API shape
func NewBalanceResponse(wallet string, snapshot *entities.BalanceSnapshot) *BalanceResponse {
	tokens := snapshot.Holdings
	if tokens == nil {
		tokens = []entities.TokenHolding{}
	}

	return &BalanceResponse{
		SolBalance: snapshot.NativeBalance,
		Tokens:     tokens,
		Wallet:     wallet,
	}
}

// GetBalances returns the native and token balances of a wallet.
// The address is passed to the chain unchanged.
func (s *PortfolioService) GetBalances(ctx context.Context, address string) (*BalanceResponse, error) {
	if address == "" {
		return nil, ErrMissingAddress
	}

	cacheKey := fmt.Sprintf("balances:%s", address)

	if s.cacheEnabled() {
		var cached BalanceResponse
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			s.logger.Debug("Cache hit", zap.String("key", cacheKey))
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Failed to read cache", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	snapshot, err := s.fetcher.Fetch(ctx, address)
	if err != nil {
		return nil, err
	}

	response := NewBalanceResponse(address, snapshot)

	s.logger.Info("Fetched wallet balances",
		zap.String("wallet", address),
		zap.Float64("sol_balance", response.SolBalance),
		zap.Int("tokens", len(response.Tokens)),
		zap.String("endpoint", snapshot.Endpoint),
		zap.Int("attempts", snapshot.Attempts),
	)

	if s.cacheEnabled() {
		if err := s.cache.SetWithTTL(ctx, cacheKey, response, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache response", zap.Error(err))
		}
	}

	return response, nil
}

func (s *PortfolioService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}
