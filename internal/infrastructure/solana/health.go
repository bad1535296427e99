package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EndpointChecker reports whether any configured RPC endpoint is healthy
type EndpointChecker struct {
	endpoints []string
	logger    *zap.Logger
}

// NewEndpointChecker creates a health checker over the given endpoints
func NewEndpointChecker(endpoints []string, logger *zap.Logger) *EndpointChecker {
	return &EndpointChecker{
		endpoints: endpoints,
		logger:    logger,
	}
}

// HealthCheck returns nil as soon as one endpoint answers getHealth with "ok"
func (c *EndpointChecker) HealthCheck(ctx context.Context) error {
	if len(c.endpoints) == 0 {
		return errors.New("no RPC endpoints configured")
	}

	var errs []error
	for _, endpoint := range c.endpoints {
		err := checkEndpoint(ctx, endpoint)
		if err == nil {
			return nil
		}

		c.logger.Debug("RPC endpoint unhealthy",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", endpoint, err))
	}

	return errors.Join(errs...)
}

// EndpointStatus is the result of probing one endpoint
type EndpointStatus struct {
	Endpoint string
	Err      error // nil when healthy
	Latency  time.Duration
}

// Healthy reports whether the endpoint answered "ok"
func (s EndpointStatus) Healthy() bool {
	return s.Err == nil
}

// CheckEndpoints probes every endpoint concurrently and returns the results
// in configuration order
func (c *EndpointChecker) CheckEndpoints(ctx context.Context) []EndpointStatus {
	statuses := make([]EndpointStatus, len(c.endpoints))

	var g errgroup.Group
	for i, endpoint := range c.endpoints {
		i, endpoint := i, endpoint
		g.Go(func() error {
			start := time.Now()
			err := checkEndpoint(ctx, endpoint)
			statuses[i] = EndpointStatus{
				Endpoint: endpoint,
				Err:      err,
				Latency:  time.Since(start),
			}
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

const healthOK = "ok"

func checkEndpoint(ctx context.Context, endpoint string) error {
	client := rpc.New(endpoint)
	defer client.Close()

	status, err := client.GetHealth(ctx)
	if err != nil {
		return err
	}
	if status != healthOK {
		return fmt.Errorf("node reported %q", status)
	}
	return nil
}
