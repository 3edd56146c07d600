// Package checkout charges an ordered list of payment methods one after
// another and reports each outcome.
package checkout

import (
	"context"
	"log/slog"

	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/amirasaad/paymethods/pkg/processor"
)

// Status classifies an Outcome.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
	StatusInvalid   Status = "invalid"
)

// Outcome is what happened to one payment method.
type Outcome struct {
	Position int
	Method   string
	Status   Status
	// Result is zero for StatusInvalid.
	Result processor.Result
}

// Summary counts outcomes by status.
type Summary struct {
	Confirmed int
	Failed    int
	Invalid   int
}

// Total returns the number of processed payment methods.
func (s Summary) Total() int {
	return s.Confirmed + s.Failed + s.Invalid
}

// Reporter receives outcomes as they happen.
type Reporter interface {
	Report(o Outcome)
	Summarize(s Summary)
}

// Service holds the payment methods in the order they are charged.
type Service struct {
	processors []processor.Processor
	reporter   Reporter
	logger     *slog.Logger
}

// New creates a checkout service. reporter may be nil.
func New(processors []processor.Processor, reporter Reporter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processors: processors,
		reporter:   reporter,
		logger:     logger,
	}
}

// Run validates and charges every payment method in order. A method only
// starts once the previous one, including its lookups, has finished.
// Failures never stop the pass.
func (s *Service) Run(ctx context.Context, amount money.Money) ([]Outcome, Summary) {
	outcomes := make([]Outcome, 0, len(s.processors))
	var summary Summary

	for i, p := range s.processors {
		o := s.process(ctx, i+1, p, amount)
		switch o.Status {
		case StatusConfirmed:
			summary.Confirmed++
		case StatusFailed:
			summary.Failed++
		case StatusInvalid:
			summary.Invalid++
		}
		outcomes = append(outcomes, o)
		if s.reporter != nil {
			s.reporter.Report(o)
		}
	}

	s.logger.InfoContext(ctx, "Checkout run finished",
		"confirmed", summary.Confirmed,
		"failed", summary.Failed,
		"invalid", summary.Invalid,
	)
	if s.reporter != nil {
		s.reporter.Summarize(summary)
	}
	return outcomes, summary
}

func (s *Service) process(ctx context.Context, pos int, p processor.Processor, amount money.Money) Outcome {
	o := Outcome{Position: pos, Method: p.Method()}
	log := s.logger.With("position", pos, "method", o.Method)

	if !p.ValidateDetails() {
		log.WarnContext(ctx, "Payment details invalid")
		o.Status = StatusInvalid
		return o
	}

	log.DebugContext(ctx, "Executing transaction", "amount", amount.String())
	o.Result = p.ExecuteTransaction(ctx, amount)
	if o.Result.Succeeded() {
		o.Status = StatusConfirmed
	} else {
		o.Status = StatusFailed
		log.WarnContext(ctx, "Transaction failed", "code", o.Result.Code, "error", o.Result.Err)
	}
	return o
}
