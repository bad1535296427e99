package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bimakw/sol-portfolio/internal/application/services"
)

// FetchPath is the balance route served by the API
const FetchPath = "/api/token/fetch"

// Client calls a running portfolio API
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client for baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type fetchRequest struct {
	Address string `json:"address"`
}

// FetchBalances posts the address to the balance route and decodes the result.
// A non-200 status or a body carrying an error field is returned as an error.
func (c *Client) FetchBalances(ctx context.Context, address string) (*services.BalanceResponse, error) {
	body, status, err := c.postJSON(ctx, c.baseURL+FetchPath, fetchRequest{Address: address})
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		var apiErr services.ErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			if apiErr.Details != "" {
				return nil, fmt.Errorf("api error (status %d): %s: %s", status, apiErr.Error, apiErr.Details)
			}
			return nil, fmt.Errorf("api error (status %d): %s", status, apiErr.Error)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", status, string(body))
	}

	var envelope struct {
		services.BalanceResponse
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Error != "" {
		return nil, fmt.Errorf("api error: %s", envelope.Error)
	}

	return &envelope.BalanceResponse, nil
}

// postJSON sends a POST request with JSON payload
func (c *Client) postJSON(ctx context.Context, url string, payload interface{}) ([]byte, int, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}
