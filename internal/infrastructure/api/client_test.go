package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bimakw/sol-portfolio/internal/testutil"
)

func TestClient_FetchBalances(t *testing.T) {
	ctx := context.Background()

	t.Run("posts address and decodes response", func(t *testing.T) {
		var gotMethod, gotPath, gotAddress, gotContentType string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")

			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			gotAddress = body["address"]

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"solBalance":2.5,"tokens":[{"mint":"` + testutil.USDCMint +
				`","amount":"1000000","decimals":6,"uiAmount":1}],"wallet":"` + testutil.WalletAddress + `"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL+"/", 5*time.Second)

		result, err := client.FetchBalances(ctx, testutil.WalletAddress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotMethod != http.MethodPost || gotPath != FetchPath {
			t.Errorf("expected POST %s, got %s %s", FetchPath, gotMethod, gotPath)
		}
		if gotContentType != "application/json" {
			t.Errorf("expected JSON content type, got %s", gotContentType)
		}
		if gotAddress != testutil.WalletAddress {
			t.Errorf("expected address %s, got %s", testutil.WalletAddress, gotAddress)
		}

		if result.SolBalance != 2.5 || result.Wallet != testutil.WalletAddress {
			t.Errorf("unexpected result: %+v", result)
		}
		if len(result.Tokens) != 1 || result.Tokens[0].Mint != testutil.USDCMint || result.Tokens[0].UIAmount != 1 {
			t.Errorf("unexpected tokens: %+v", result.Tokens)
		}
	})

	t.Run("returns error with details on 500", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to fetch token balances","details":"all balance fetch attempts failed"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second)

		_, err := client.FetchBalances(ctx, testutil.WalletAddress)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Failed to fetch token balances") || !strings.Contains(err.Error(), "status 500") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("returns error on non-JSON failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second)

		_, err := client.FetchBalances(ctx, testutil.WalletAddress)
		if err == nil || !strings.Contains(err.Error(), "status 502") {
			t.Errorf("expected status 502 error, got %v", err)
		}
	})

	t.Run("returns error when body carries error field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second)

		_, err := client.FetchBalances(ctx, testutil.WalletAddress)
		if err == nil || !strings.Contains(err.Error(), "upstream unavailable") {
			t.Errorf("expected api error, got %v", err)
		}
	})

	t.Run("returns error on invalid JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second)

		if _, err := client.FetchBalances(ctx, testutil.WalletAddress); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("returns error when server is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := NewClient(url, time.Second)

		if _, err := client.FetchBalances(ctx, testutil.WalletAddress); err == nil {
			t.Error("expected error")
		}
	})
}
