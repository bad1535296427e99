package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/bimakw/sol-portfolio/internal/config"
	"github.com/bimakw/sol-portfolio/internal/domain/entities"
	"github.com/bimakw/sol-portfolio/internal/domain/repositories"
)

// Ensure Dialer implements ChainDialer
var _ repositories.ChainDialer = (*Dialer)(nil)

// Ensure Connection implements ChainConnection
var _ repositories.ChainConnection = (*Connection)(nil)

// Dialer opens solana-go RPC connections with a fixed commitment level
type Dialer struct {
	commitment rpc.CommitmentType
	logger     *zap.Logger
}

// NewDialer creates a new dialer from the Solana configuration
func NewDialer(cfg config.SolanaConfig, logger *zap.Logger) *Dialer {
	commitment := rpc.CommitmentType(cfg.Commitment)
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &Dialer{
		commitment: commitment,
		logger:     logger,
	}
}

// Dial creates a connection to the given endpoint.
// No network traffic happens until the first request.
func (d *Dialer) Dial(endpoint string) (repositories.ChainConnection, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("empty RPC endpoint")
	}

	d.logger.Debug("Opening Solana RPC connection",
		zap.String("endpoint", endpoint),
		zap.String("commitment", string(d.commitment)),
	)

	return &Connection{
		client:     rpc.New(endpoint),
		endpoint:   endpoint,
		commitment: d.commitment,
	}, nil
}

// Connection wraps a solana-go RPC client bound to one endpoint
type Connection struct {
	client     *rpc.Client
	endpoint   string
	commitment rpc.CommitmentType
}

// Endpoint returns the RPC URL of this connection
func (c *Connection) Endpoint() string {
	return c.endpoint
}

// GetBalance returns the lamport balance of an account
func (c *Connection) GetBalance(ctx context.Context, account string) (uint64, error) {
	owner, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return 0, fmt.Errorf("invalid account %q: %w", account, err)
	}

	out, err := c.client.GetBalance(ctx, owner, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("getBalance: %w", err)
	}
	if out == nil {
		return 0, fmt.Errorf("getBalance: empty result")
	}

	return out.Value, nil
}

// GetTokenAccounts returns all SPL token accounts owned by account
func (c *Connection) GetTokenAccounts(ctx context.Context, account string) ([]entities.TokenAccount, error) {
	owner, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return nil, fmt.Errorf("invalid account %q: %w", account, err)
	}

	programID := solana.TokenProgramID
	out, err := c.client.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &programID},
		&rpc.GetTokenAccountsOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingJSONParsed,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("getTokenAccountsByOwner: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("getTokenAccountsByOwner: empty result")
	}

	accounts := make([]entities.TokenAccount, 0, len(out.Value))
	for _, raw := range out.Value {
		if raw == nil || raw.Account.Data == nil {
			return nil, fmt.Errorf("token account without data")
		}

		acc, err := ParseTokenAccount(raw.Account.Data.GetRawJSON())
		if err != nil {
			return nil, fmt.Errorf("token account %s: %w", raw.Pubkey, err)
		}
		acc.Address = raw.Pubkey.String()

		accounts = append(accounts, *acc)
	}

	return accounts, nil
}

// Close closes the underlying RPC client
func (c *Connection) Close() error {
	return c.client.Close()
}
