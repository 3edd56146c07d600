package processor

import (
	"context"
	"log/slog"

	"github.com/amirasaad/paymethods/pkg/money"
)

// MethodVisa labels card payments.
const MethodVisa = "VISA"

// cardDetails holds the fields checked by ValidateDetails.
type cardDetails struct {
	Number string `validate:"len=16,number"`
}

// CardPayment is charged synchronously and has no failure path once valid.
type CardPayment struct {
	number     string
	cvv        string
	expiryYear int
	opts       options
}

// NewCardPayment creates a card payment method.
func NewCardPayment(number, cvv string, expiryYear int, opts ...Option) *CardPayment {
	return &CardPayment{
		number:     number,
		cvv:        cvv,
		expiryYear: expiryYear,
		opts:       newOptions(MethodVisa, opts),
	}
}

// Method returns MethodVisa.
func (c *CardPayment) Method() string { return MethodVisa }

// CVV returns the card verification value.
func (c *CardPayment) CVV() string { return c.cvv }

// ExpiryYear returns the card's expiry year.
func (c *CardPayment) ExpiryYear() int { return c.expiryYear }

// LastFour returns the last four digits of the card number for display.
func (c *CardPayment) LastFour() string {
	if len(c.number) < 4 {
		return c.number
	}
	return c.number[len(c.number)-4:]
}

// ValidateDetails reports whether the card number is exactly 16 digits.
func (c *CardPayment) ValidateDetails() bool {
	return validDetails(c.opts.logger, cardDetails{Number: c.number})
}

// ExecuteTransaction confirms the charge immediately.
func (c *CardPayment) ExecuteTransaction(ctx context.Context, amount money.Money) Result {
	res := confirmed(MethodVisa, c.opts.newSuffix())
	c.opts.logger.InfoContext(ctx, "Card charged",
		"card", "****"+c.LastFour(),
		"amount", amount.String(),
		slog.String("transaction_id", res.TransactionID),
	)
	return res
}

var _ Processor = (*CardPayment)(nil)
