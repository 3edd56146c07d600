// Package processor implements the payment methods that can be charged
// through the common Processor contract.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Processor is a payment method that can be validated locally and then
// charged. Callers must only call ExecuteTransaction after ValidateDetails
// returned true.
type Processor interface {
	// Method is the label used in transaction IDs and reports, e.g. "VISA".
	Method() string
	// ValidateDetails checks the method's details without side effects.
	ValidateDetails() bool
	// ExecuteTransaction charges amount. It may block on external lookups.
	ExecuteTransaction(ctx context.Context, amount money.Money) Result
}

// FailureCode identifies the stage at which a transaction failed.
type FailureCode string

// Failure codes for the default BTC → USD → ZAR chain.
const (
	BTCFailAPIError FailureCode = "BTC_FAIL_API_ERROR"
	ZARFailAPIError FailureCode = "ZAR_FAIL_API_ERROR"
)

// APIFailure returns the failure code for a lookup that failed while
// pricing code, e.g. "ZAR_FAIL_API_ERROR".
func APIFailure(code money.Code) FailureCode {
	return FailureCode(string(code) + "_FAIL_API_ERROR")
}

// Result is the outcome of ExecuteTransaction. Exactly one of TransactionID
// and Code is set.
type Result struct {
	Method        string
	TransactionID string
	Code          FailureCode
	// Err is the underlying cause when Code is set.
	Err error
	// CryptoAmount and CombinedRate are only set for crypto payments.
	CryptoAmount decimal.Decimal
	CombinedRate decimal.Decimal
}

// Succeeded reports whether the transaction was confirmed.
func (r Result) Succeeded() bool {
	return r.Code == "" && r.TransactionID != ""
}

// String returns the transaction ID on success and the failure code otherwise.
func (r Result) String() string {
	if r.Succeeded() {
		return r.TransactionID
	}
	return string(r.Code)
}

func confirmed(method, suffix string) Result {
	return Result{
		Method:        method,
		TransactionID: fmt.Sprintf("%s_CONFIRMED_TXN_%s", method, suffix),
	}
}

func failed(method string, code FailureCode, err error) Result {
	return Result{Method: method, Code: code, Err: err}
}

// SuffixLength is the length of the random part of a transaction ID.
const SuffixLength = 4

// NewSuffix returns SuffixLength uppercase hex characters from a random UUID.
func NewSuffix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:SuffixLength])
}

type options struct {
	logger    *slog.Logger
	newSuffix func() string
}

// Option configures a processor.
type Option func(*options)

// WithLogger sets the logger used for validation and execution messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSuffixGenerator overrides how transaction ID suffixes are generated.
func WithSuffixGenerator(f func() string) Option {
	return func(o *options) {
		if f != nil {
			o.newSuffix = f
		}
	}
}

func newOptions(method string, opts []Option) options {
	o := options{logger: slog.Default(), newSuffix: NewSuffix}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("method", method)
	return o
}
