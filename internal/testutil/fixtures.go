package testutil

import (
	"bytes"

	"github.com/mr-tron/base58"

	"github.com/bimakw/sol-portfolio/internal/domain/entities"
)

// Common test keys
const (
	WalletAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	USDCMint      = "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU" // devnet USDC
	BonkMint      = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
	WSOLMint      = "So11111111111111111111111111111111111111112"
)

// Test endpoints; nothing listens on them
const (
	PrimaryEndpoint   = "https://rpc-primary.test"
	SecondaryEndpoint = "https://rpc-secondary.test"
	TertiaryEndpoint  = "https://rpc-tertiary.test"
)

// TestPublicKey returns a valid base58 public key made of a repeated seed byte
func TestPublicKey(seed byte) string {
	return base58.Encode(bytes.Repeat([]byte{seed}, 32))
}

// TokenAccountAddress returns a deterministic token account address
func TokenAccountAddress(n int) string {
	return TestPublicKey(byte(0x10 + n))
}

// CreateTestTokenAccount creates a token account holding 1 USDC
func CreateTestTokenAccount(opts ...TokenAccountOption) entities.TokenAccount {
	a := entities.TokenAccount{
		Address:  TokenAccountAddress(1),
		Mint:     USDCMint,
		Amount:   "1000000",
		Decimals: 6,
		UIAmount: 1.0,
	}

	for _, opt := range opts {
		opt(&a)
	}

	return a
}

type TokenAccountOption func(*entities.TokenAccount)

func WithAccountAddress(addr string) TokenAccountOption {
	return func(a *entities.TokenAccount) {
		a.Address = addr
	}
}

func WithMint(mint string) TokenAccountOption {
	return func(a *entities.TokenAccount) {
		a.Mint = mint
	}
}

// WithAmount sets the raw amount and the matching UI amount
func WithAmount(amount string, decimals uint8, uiAmount float64) TokenAccountOption {
	return func(a *entities.TokenAccount) {
		a.Amount = amount
		a.Decimals = decimals
		a.UIAmount = uiAmount
	}
}

// WithZeroBalance empties the account
func WithZeroBalance() TokenAccountOption {
	return func(a *entities.TokenAccount) {
		a.Amount = "0"
		a.UIAmount = 0
	}
}
