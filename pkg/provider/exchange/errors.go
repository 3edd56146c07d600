package exchange

import (
	"errors"
	"strings"
)

// Common errors for exchange operations
var (
	// ErrRateUnavailable indicates that a provider could not produce a rate.
	ErrRateUnavailable = errors.New("rate unavailable")

	// ErrRateNotFound indicates that the response did not contain the requested rate.
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrInvalidPair indicates a malformed trading pair symbol.
	ErrInvalidPair = errors.New("invalid currency pair")
)

// ProviderError represents an error from a rate provider
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return "provider " + e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError checks if an error is, or wraps, a ProviderError
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// SplitPair splits a pair symbol like "BTC-USD" into its base and quote codes.
func SplitPair(pair string) (base, quote string, err error) {
	base, quote, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(pair)), "-")
	if !ok || base == "" || quote == "" || strings.Contains(quote, "-") {
		return "", "", errors.Join(ErrInvalidPair, errors.New(pair))
	}
	return base, quote, nil
}

// JoinPair builds a pair symbol from base and quote codes.
func JoinPair(base, quote string) string {
	return strings.ToUpper(base) + "-" + strings.ToUpper(quote)
}
