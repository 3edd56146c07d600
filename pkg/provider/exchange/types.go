// Package exchange defines the rate lookup contracts used by payment
// processors and the shared in-memory rate cache.
package exchange

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateInfo contains information about a fetched rate.
type RateInfo struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
	Timestamp    time.Time       `json:"timestamp"`
	Provider     string          `json:"provider"`
}

// RateLookup fetches a spot price for a trading pair such as "BTC-USD".
//
// Implementations never panic. On failure they return money.ZeroRate and an
// error wrapping ErrRateUnavailable.
type RateLookup interface {
	GetCurrentRate(ctx context.Context, pair string) (decimal.Decimal, error)
}

// Converter fetches the conversion rate between two fiat currencies.
//
// Failure semantics match RateLookup.
type Converter interface {
	GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// RateCache stores fetched rates keyed by currency pair. A miss returns
// (nil, nil).
type RateCache interface {
	GetRate(ctx context.Context, from, to string) (*RateInfo, error)
	StoreRate(ctx context.Context, rate *RateInfo) error
}
