package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/mr-tron/base58"

	"github.com/bimakw/sol-portfolio/internal/domain/entities"
)

func TestMockChainDialer_Defaults(t *testing.T) {
	dialer := NewMockChainDialer()
	dialer.Balance = 42
	dialer.TokenAccounts = []entities.TokenAccount{CreateTestTokenAccount()}

	conn, err := dialer.Dial(PrimaryEndpoint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()

	balance, err := conn.GetBalance(ctx, WalletAddress)
	if err != nil || balance != 42 {
		t.Errorf("expected balance 42, got %d (err %v)", balance, err)
	}

	accounts, err := conn.GetTokenAccounts(ctx, WalletAddress)
	if err != nil || len(accounts) != 1 {
		t.Errorf("expected 1 account, got %d (err %v)", len(accounts), err)
	}

	if conn.Endpoint() != PrimaryEndpoint {
		t.Errorf("expected endpoint %s, got %s", PrimaryEndpoint, conn.Endpoint())
	}

	_ = conn.Close()
	if !dialer.Connections[0].Closed() {
		t.Error("expected connection to be closed")
	}
}

func TestMockChainDialer_HooksSeeDialNumber(t *testing.T) {
	dialer := NewMockChainDialer()
	dialer.GetBalanceFunc = func(ctx context.Context, endpoint string, dial int, account string) (uint64, error) {
		if dial == 1 {
			return 0, errors.New("first dial fails")
		}
		return uint64(dial), nil
	}

	ctx := context.Background()

	first, _ := dialer.Dial(PrimaryEndpoint)
	if _, err := first.GetBalance(ctx, WalletAddress); err == nil {
		t.Error("expected first dial to fail")
	}

	second, _ := dialer.Dial(SecondaryEndpoint)
	balance, err := second.GetBalance(ctx, WalletAddress)
	if err != nil || balance != 2 {
		t.Errorf("expected balance 2 on second dial, got %d (err %v)", balance, err)
	}

	endpoints := dialer.DialedEndpoints()
	if len(endpoints) != 2 || endpoints[0] != PrimaryEndpoint || endpoints[1] != SecondaryEndpoint {
		t.Errorf("unexpected dialed endpoints: %v", endpoints)
	}
	if dialer.DialCount() != 2 {
		t.Errorf("expected 2 dials, got %d", dialer.DialCount())
	}
}

func TestTestPublicKey(t *testing.T) {
	key := TestPublicKey(7)

	decoded, err := base58.Decode(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(decoded))
	}
	if TokenAccountAddress(1) == TokenAccountAddress(2) {
		t.Error("expected distinct token account addresses")
	}
}

func TestCreateTestTokenAccount(t *testing.T) {
	acc := CreateTestTokenAccount(WithMint(BonkMint), WithAmount("250000", 5, 2.5))
	if acc.Mint != BonkMint || acc.Amount != "250000" || acc.Decimals != 5 || acc.UIAmount != 2.5 {
		t.Errorf("unexpected account: %+v", acc)
	}

	zero := CreateTestTokenAccount(WithZeroBalance())
	if zero.UIAmount != 0 || zero.Amount != "0" {
		t.Errorf("expected zero balance, got %+v", zero)
	}
}

func TestMockHealthChecker(t *testing.T) {
	checker := NewMockHealthChecker(true)
	if err := checker.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}

	checker.SetHealthy(false)
	if err := checker.HealthCheck(context.Background()); err == nil {
		t.Error("expected unhealthy")
	}

	if len(checker.Calls) != 2 {
		t.Errorf("expected 2 calls, got %d", len(checker.Calls))
	}
}
