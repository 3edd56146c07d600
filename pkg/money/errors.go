package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when an amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when an amount is below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidCurrency is returned for malformed currency codes.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidRate is returned when a rate is zero or negative.
	ErrInvalidRate = errors.New("rate must be positive")
)
