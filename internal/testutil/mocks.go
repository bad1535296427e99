package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/bimakw/sol-portfolio/internal/domain/entities"
	"github.com/bimakw/sol-portfolio/internal/domain/repositories"
	"github.com/bimakw/sol-portfolio/internal/infrastructure/cache"
)

type MockCall struct {
	Method string
	Args   []interface{}
}

// MockChainDialer is a mock implementation of ChainDialer.
// Each Dial hands out a fresh MockChainConnection whose behavior comes from
// the hooks below, keyed by the endpoint and the 1-based dial number.
type MockChainDialer struct {
	mu sync.Mutex

	// Function hooks for custom behavior
	DialFunc             func(endpoint string) (repositories.ChainConnection, error)
	GetBalanceFunc       func(ctx context.Context, endpoint string, dial int, account string) (uint64, error)
	GetTokenAccountsFunc func(ctx context.Context, endpoint string, dial int, account string) ([]entities.TokenAccount, error)

	// Defaults used when no hook is set
	Balance       uint64
	TokenAccounts []entities.TokenAccount

	// Call tracking
	Calls       []MockCall
	Connections []*MockChainConnection
}

func NewMockChainDialer() *MockChainDialer {
	return &MockChainDialer{
		Calls:       make([]MockCall, 0),
		Connections: make([]*MockChainConnection, 0),
	}
}

func (m *MockChainDialer) Dial(endpoint string) (repositories.ChainConnection, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "Dial", Args: []interface{}{endpoint}})
	dial := len(m.Calls)
	m.mu.Unlock()

	if m.DialFunc != nil {
		return m.DialFunc(endpoint)
	}

	conn := &MockChainConnection{
		endpoint: endpoint,
		dial:     dial,
		parent:   m,
	}

	m.mu.Lock()
	m.Connections = append(m.Connections, conn)
	m.mu.Unlock()

	return conn, nil
}

// DialedEndpoints returns the endpoints in dial order
func (m *MockChainDialer) DialedEndpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	endpoints := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		if c.Method == "Dial" {
			endpoints = append(endpoints, c.Args[0].(string))
		}
	}
	return endpoints
}

// DialCount returns how many connections were requested
func (m *MockChainDialer) DialCount() int {
	return len(m.DialedEndpoints())
}

// MockChainConnection is a mock implementation of ChainConnection
type MockChainConnection struct {
	mu sync.Mutex

	endpoint string
	dial     int
	parent   *MockChainDialer
	closed   bool

	Calls []MockCall
}

func (c *MockChainConnection) Endpoint() string {
	return c.endpoint
}

func (c *MockChainConnection) GetBalance(ctx context.Context, account string) (uint64, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, MockCall{Method: "GetBalance", Args: []interface{}{account}})
	c.mu.Unlock()

	if c.parent.GetBalanceFunc != nil {
		return c.parent.GetBalanceFunc(ctx, c.endpoint, c.dial, account)
	}
	return c.parent.Balance, nil
}

func (c *MockChainConnection) GetTokenAccounts(ctx context.Context, account string) ([]entities.TokenAccount, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, MockCall{Method: "GetTokenAccounts", Args: []interface{}{account}})
	c.mu.Unlock()

	if c.parent.GetTokenAccountsFunc != nil {
		return c.parent.GetTokenAccountsFunc(ctx, c.endpoint, c.dial, account)
	}
	return c.parent.TokenAccounts, nil
}

func (c *MockChainConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close was called
func (c *MockChainConnection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	mu sync.RWMutex

	Healthy bool
	Error   error
	Calls   []MockCall
}

func NewMockHealthChecker(healthy bool) *MockHealthChecker {
	var err error
	if !healthy {
		err = errors.New("health check failed")
	}
	return &MockHealthChecker{
		Healthy: healthy,
		Error:   err,
		Calls:   make([]MockCall, 0),
	}
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "HealthCheck", Args: nil})
	m.mu.Unlock()

	return m.Error
}

func (m *MockHealthChecker) SetHealthy(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Healthy = healthy
	if healthy {
		m.Error = nil
	} else {
		m.Error = errors.New("health check failed")
	}
}

// MockResponseCache is an in-memory implementation of ResponseCache.
// Values are stored as JSON so reads return copies.
type MockResponseCache struct {
	mu sync.Mutex

	Entries map[string][]byte
	TTLs    map[string]time.Duration

	// Returned instead of touching Entries when set
	GetErr error
	SetErr error

	Calls []MockCall
}

func NewMockResponseCache() *MockResponseCache {
	return &MockResponseCache{
		Entries: make(map[string][]byte),
		TTLs:    make(map[string]time.Duration),
		Calls:   make([]MockCall, 0),
	}
}

func (m *MockResponseCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: "Get", Args: []interface{}{key}})

	if m.GetErr != nil {
		return m.GetErr
	}

	data, ok := m.Entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *MockResponseCache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: "SetWithTTL", Args: []interface{}{key, ttl}})

	if m.SetErr != nil {
		return m.SetErr
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Entries[key] = data
	m.TTLs[key] = ttl
	return nil
}
