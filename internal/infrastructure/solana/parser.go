package solana

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/bimakw/sol-portfolio/internal/domain/entities"
)

// LamportsPerSOL is the fixed number of lamports in one SOL.
// Only valid for the native coin; SPL tokens carry their own decimals.
const LamportsPerSOL = 1_000_000_000

const nativeDecimals = 9

// parsedTokenAccount mirrors the jsonParsed encoding of an SPL token account
type parsedTokenAccount struct {
	Program string `json:"program"`
	Parsed  struct {
		Type string `json:"type"`
		Info struct {
			Mint        string `json:"mint"`
			Owner       string `json:"owner"`
			TokenAmount struct {
				Amount         string   `json:"amount"`
				Decimals       uint8    `json:"decimals"`
				UIAmount       *float64 `json:"uiAmount"`
				UIAmountString string   `json:"uiAmountString"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// ParseTokenAccount parses the jsonParsed data of a token account.
// The returned account has no Address set.
func ParseTokenAccount(data []byte) (*entities.TokenAccount, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty account data")
	}

	var parsed parsedTokenAccount
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode parsed account: %w", err)
	}

	info := parsed.Parsed.Info
	if info.Mint == "" {
		return nil, fmt.Errorf("missing mint")
	}

	amount, ok := new(big.Int).SetString(info.TokenAmount.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token amount %q", info.TokenAmount.Amount)
	}

	// Older nodes return a null uiAmount for zero balances
	var uiAmount float64
	if info.TokenAmount.UIAmount != nil {
		uiAmount = *info.TokenAmount.UIAmount
	} else {
		uiAmount = toUIAmount(amount, info.TokenAmount.Decimals)
	}

	return &entities.TokenAccount{
		Mint:     info.Mint,
		Amount:   amount.String(),
		Decimals: info.TokenAmount.Decimals,
		UIAmount: uiAmount,
	}, nil
}

// LamportsToSOL converts a lamport balance to SOL
func LamportsToSOL(lamports uint64) float64 {
	return toUIAmount(new(big.Int).SetUint64(lamports), nativeDecimals)
}

func toUIAmount(amount *big.Int, decimals uint8) float64 {
	f, _ := decimal.NewFromBigInt(amount, -int32(decimals)).Float64()
	return f
}
