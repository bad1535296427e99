package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Solana RPC configuration
	Solana SolanaConfig

	// Redis configuration
	Redis RedisConfig

	// API server configuration
	API APIConfig

	// Logging configuration
	Log LogConfig
}

// SolanaConfig holds RPC endpoint and retry settings for balance fetching
type SolanaConfig struct {
	// Endpoints are tried round-robin, one per attempt
	Endpoints      []string      `envconfig:"SOLANA_RPC_ENDPOINTS" default:"https://api.devnet.solana.com,https://api.devnet.solana.com/,https://devnet.helius-rpc.com/?api-key=demo"`
	Commitment     string        `envconfig:"SOLANA_COMMITMENT" default:"confirmed"`
	RequestTimeout time.Duration `envconfig:"SOLANA_REQUEST_TIMEOUT" default:"30s"`
	MaxRetries     int           `envconfig:"SOLANA_MAX_RETRIES" default:"3"`
	RetryDelay     time.Duration `envconfig:"SOLANA_RETRY_DELAY" default:"1s"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8081"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"100"`

	// Zero disables the response cache
	CacheTTL time.Duration `envconfig:"API_CACHE_TTL" default:"0s"`

	// Used by the portfolio CLI to reach a running API
	BaseURL       string        `envconfig:"API_BASE_URL" default:"http://localhost:8081"`
	ClientTimeout time.Duration `envconfig:"API_CLIENT_TIMEOUT" default:"30s"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Solana.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the fetcher can make at least one attempt
func (c *SolanaConfig) Validate() error {
	if len(c.Endpoints) == 0 {
		return errors.New("at least one RPC endpoint is required")
	}
	for i, ep := range c.Endpoints {
		if ep == "" {
			return fmt.Errorf("RPC endpoint %d is empty", i)
		}
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", c.RetryDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// PrimaryEndpoint returns the first configured endpoint
func (c *SolanaConfig) PrimaryEndpoint() string {
	if len(c.Endpoints) == 0 {
		return ""
	}
	return c.Endpoints[0]
}
