package entities

// TokenHolding represents a single SPL token balance held by a wallet
type TokenHolding struct {
	Mint     string  `json:"mint"`
	Amount   string  `json:"amount"` // Raw amount in the mint's smallest unit
	Decimals uint8   `json:"decimals"`
	UIAmount float64 `json:"uiAmount"` // Amount / 10^Decimals
}

// TokenAccount is one parsed token account as returned by the chain,
// before zero balances are filtered out
type TokenAccount struct {
	Address  string
	Mint     string
	Amount   string
	Decimals uint8
	UIAmount float64
}

// Holding converts the account into its holding representation
func (a TokenAccount) Holding() TokenHolding {
	return TokenHolding{
		Mint:     a.Mint,
		Amount:   a.Amount,
		Decimals: a.Decimals,
		UIAmount: a.UIAmount,
	}
}

// BalanceSnapshot is the result of a single successful balance fetch
type BalanceSnapshot struct {
	NativeBalance float64        // SOL
	Holdings      []TokenHolding // Discovery order, only UIAmount > 0
	Endpoint      string         // Endpoint that served the snapshot
	Attempts      int            // Attempts used, including the successful one
}

// FilterHoldings keeps accounts with a positive UI amount, preserving order
func FilterHoldings(accounts []TokenAccount) []TokenHolding {
	holdings := make([]TokenHolding, 0, len(accounts))
	for _, a := range accounts {
		if a.UIAmount > 0 {
			holdings = append(holdings, a.Holding())
		}
	}
	return holdings
}
