package services

import (
	"errors"
	"fmt"
)

// ErrMissingAddress is returned when no wallet address was supplied
var ErrMissingAddress = errors.New("wallet address is required")

// ErrExhaustedRetries matches every FetchError
var ErrExhaustedRetries = errors.New("all balance fetch attempts failed")

// FetchError is returned when every attempt of a balance fetch failed
type FetchError struct {
	Attempts int
	Endpoint string // Endpoint of the last attempt
	Err      error  // Error of the last attempt
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("balance fetch failed after %d attempts (last endpoint %s): %v", e.Attempts, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrExhaustedRetries, e.Err}
}
