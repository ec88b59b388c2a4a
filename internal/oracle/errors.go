package oracle

import "errors"

var (
	// ErrServiceUnavailable indicates the model service is unreachable
	ErrServiceUnavailable = errors.New("model service unavailable")

	// ErrInvalidResponse indicates the model service returned an unusable body
	ErrInvalidResponse = errors.New("invalid response from model service")

	// ErrCircuitOpen indicates too many consecutive failures
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMissingQuotes indicates a market estimate was requested without prices
	ErrMissingQuotes = errors.New("market quotes are required")
)
