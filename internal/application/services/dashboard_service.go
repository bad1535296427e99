package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// BalanceAPI is the request boundary as seen by a dashboard client
type BalanceAPI interface {
	FetchBalances(ctx context.Context, address string) (*BalanceResponse, error)
}

// Source tells which path produced a dashboard result
type Source string

const (
	SourceAPI    Source = "api"
	SourceDirect Source = "direct"
)

// DashboardResult is what a dashboard renders
type DashboardResult struct {
	Balances *BalanceResponse
	Source   Source
	APIError error // Set when the API failed and the direct query was used
}

// DashboardService loads balances for display. The API is tried first and,
// if it fails, a single direct query is made against the primary endpoint.
type DashboardService struct {
	api      BalanceAPI
	fetcher  *BalanceFetcher
	endpoint string
	logger   *zap.Logger
}

// NewDashboardService creates a new dashboard service. A nil api skips
// straight to the direct query.
func NewDashboardService(api BalanceAPI, fetcher *BalanceFetcher, endpoint string, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		api:      api,
		fetcher:  fetcher,
		endpoint: endpoint,
		logger:   logger,
	}
}

// Load returns the balances of address. The direct query is not retried;
// when both paths fail the caller should keep whatever it showed before.
func (s *DashboardService) Load(ctx context.Context, address string) (*DashboardResult, error) {
	if address == "" {
		return nil, ErrMissingAddress
	}

	var apiErr error
	if s.api != nil {
		balances, err := s.api.FetchBalances(ctx, address)
		if err == nil {
			return &DashboardResult{Balances: balances, Source: SourceAPI}, nil
		}

		apiErr = err
		s.logger.Warn("API balance request failed, querying RPC directly",
			zap.String("wallet", address),
			zap.String("endpoint", s.endpoint),
			zap.Error(err),
		)
	}

	snapshot, err := s.fetcher.FetchOnce(ctx, s.endpoint, address)
	if err != nil {
		s.logger.Error("Direct balance query failed",
			zap.String("wallet", address),
			zap.String("endpoint", s.endpoint),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to load balances: %w", errors.Join(apiErr, err))
	}

	return &DashboardResult{
		Balances: NewBalanceResponse(address, snapshot),
		Source:   SourceDirect,
		APIError: apiErr,
	}, nil
}
