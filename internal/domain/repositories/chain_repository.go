package repositories

import (
	"context"

	"github.com/bimakw/sol-portfolio/internal/domain/entities"
)

// ChainConnection is a single connection to one RPC endpoint.
// A connection is opened per fetch attempt and closed afterwards.
type ChainConnection interface {
	// Endpoint returns the URL this connection talks to
	Endpoint() string

	// GetBalance returns the native balance of account in lamports
	GetBalance(ctx context.Context, account string) (uint64, error)

	// GetTokenAccounts returns every SPL token account owned by account,
	// zero balances included
	GetTokenAccounts(ctx context.Context, account string) ([]entities.TokenAccount, error)

	// Close releases the connection
	Close() error
}

// ChainDialer opens connections to RPC endpoints
type ChainDialer interface {
	Dial(endpoint string) (ChainConnection, error)
}
