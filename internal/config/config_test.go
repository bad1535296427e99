package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Solana.Endpoints) != 3 {
		t.Errorf("expected 3 default endpoints, got %d", len(cfg.Solana.Endpoints))
	}
	if cfg.Solana.PrimaryEndpoint() != "https://api.devnet.solana.com" {
		t.Errorf("unexpected primary endpoint: %s", cfg.Solana.PrimaryEndpoint())
	}
	if cfg.Solana.MaxRetries != 3 {
		t.Errorf("expected MaxRetries 3, got %d", cfg.Solana.MaxRetries)
	}
	if cfg.Solana.RetryDelay != time.Second {
		t.Errorf("expected RetryDelay 1s, got %s", cfg.Solana.RetryDelay)
	}
	if cfg.Solana.RequestTimeout != 30*time.Second {
		t.Errorf("expected RequestTimeout 30s, got %s", cfg.Solana.RequestTimeout)
	}
	if cfg.Solana.Commitment != "confirmed" {
		t.Errorf("expected commitment confirmed, got %s", cfg.Solana.Commitment)
	}
	if cfg.API.CacheTTL != 0 {
		t.Errorf("expected cache disabled by default, got %s", cfg.API.CacheTTL)
	}
	if cfg.API.ClientTimeout != 30*time.Second {
		t.Errorf("expected ClientTimeout 30s, got %s", cfg.API.ClientTimeout)
	}
}

func TestLoad_ClientTimeoutIndependentOfWriteTimeout(t *testing.T) {
	t.Setenv("API_WRITE_TIMEOUT", "120s")
	t.Setenv("API_CLIENT_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.ClientTimeout != 5*time.Second {
		t.Errorf("expected ClientTimeout 5s, got %s", cfg.API.ClientTimeout)
	}
	if cfg.API.WriteTimeout != 120*time.Second {
		t.Errorf("expected WriteTimeout 120s, got %s", cfg.API.WriteTimeout)
	}
}

func TestLoad_EndpointsFromEnv(t *testing.T) {
	t.Setenv("SOLANA_RPC_ENDPOINTS", "http://a.local,http://b.local")
	t.Setenv("SOLANA_MAX_RETRIES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Solana.Endpoints) != 2 || cfg.Solana.Endpoints[1] != "http://b.local" {
		t.Errorf("unexpected endpoints: %v", cfg.Solana.Endpoints)
	}
	if cfg.Solana.MaxRetries != 5 {
		t.Errorf("expected MaxRetries 5, got %d", cfg.Solana.MaxRetries)
	}
}

func TestLoad_RejectsZeroRetries(t *testing.T) {
	t.Setenv("SOLANA_MAX_RETRIES", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero retries")
	}
}

func TestSolanaConfig_Validate(t *testing.T) {
	valid := SolanaConfig{
		Endpoints:      []string{"http://a.local"},
		MaxRetries:     3,
		RetryDelay:     time.Second,
		RequestTimeout: 30 * time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(c *SolanaConfig)
		wantErr bool
	}{
		{"valid", func(c *SolanaConfig) {}, false},
		{"no endpoints", func(c *SolanaConfig) { c.Endpoints = nil }, true},
		{"empty endpoint", func(c *SolanaConfig) { c.Endpoints = []string{"http://a.local", ""} }, true},
		{"zero retries", func(c *SolanaConfig) { c.MaxRetries = 0 }, true},
		{"negative delay", func(c *SolanaConfig) { c.RetryDelay = -time.Second }, true},
		{"zero delay allowed", func(c *SolanaConfig) { c.RetryDelay = 0 }, false},
		{"zero timeout", func(c *SolanaConfig) { c.RequestTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Endpoints = append([]string(nil), valid.Endpoints...)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
