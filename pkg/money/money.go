// Package money provides fixed-point monetary values and conversion rates.
//
// Invariants:
//   - Amounts are never negative.
//   - Currency code must be three uppercase letters.
//   - A rate is only usable for conversion when strictly positive; zero is
//     reserved for "no rate available".
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FiatDecimals is the number of decimal places used when rendering fiat amounts.
const FiatDecimals = 2

// CryptoDecimals is the precision crypto amounts are rounded to.
const CryptoDecimals = 10

// ZeroRate is returned alongside an error by rate sources that could not
// produce a rate.
var ZeroRate = decimal.Zero

// Money represents a non-negative amount in a specific currency.
type Money struct {
	amount   decimal.Decimal
	currency Code
}

// New creates a Money value from a decimal amount and currency code.
func New(amount decimal.Decimal, currency Code) (Money, error) {
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	return Money{amount: amount, currency: currency}, nil
}

// Parse creates a Money value from a locale-independent decimal string
// such as "5000.00".
func Parse(amount string, currency Code) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q: %w", ErrInvalidAmount, amount, err)
	}
	return New(d, currency)
}

// Must is like Parse but panics on error. Intended for constants and tests.
func Must(amount string, currency Code) Money {
	m, err := Parse(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%q, %q): %v", amount, currency, err))
	}
	return m
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Code {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the amount with two decimals followed by the code, e.g. "5000.00 USD".
func (m Money) String() string {
	return m.amount.StringFixed(FiatDecimals) + " " + string(m.currency)
}

// ValidRate reports whether r can be used as a conversion rate.
func ValidRate(r decimal.Decimal) bool {
	return r.IsPositive()
}

// CombineRates multiplies two chained rates (e.g. BTC→USD and USD→ZAR)
// into a single BTC→ZAR rate.
func CombineRates(first, second decimal.Decimal) (decimal.Decimal, error) {
	if !ValidRate(first) || !ValidRate(second) {
		return decimal.Zero, ErrInvalidRate
	}
	return first.Mul(second), nil
}

// DivideByRate converts the amount into units priced at rate, rounded to
// CryptoDecimals places.
func (m Money) DivideByRate(rate decimal.Decimal) (decimal.Decimal, error) {
	if !ValidRate(rate) {
		return decimal.Zero, ErrInvalidRate
	}
	return m.amount.Div(rate).Round(CryptoDecimals), nil
}
