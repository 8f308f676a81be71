package models

import "errors"

var (
	// ErrNotFound means the exchange does not know the symbol
	ErrNotFound = errors.New("symbol not found")
	// ErrUnavailable covers timeouts, rate limits and upstream failures
	ErrUnavailable = errors.New("market data unavailable")
	// ErrInsufficientHistory is returned when a series cannot feed the primary indicators
	ErrInsufficientHistory = errors.New("insufficient candle history")
	// ErrConfiguration is fatal at startup
	ErrConfiguration = errors.New("configuration error")
)
