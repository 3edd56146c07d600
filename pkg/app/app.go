package app

import (
	"io"
	"log/slog"

	"github.com/amirasaad/paymethods/pkg/config"
	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/amirasaad/paymethods/pkg/processor"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
	"github.com/amirasaad/paymethods/pkg/service/checkout"
)

// Deps contains the infrastructure the payment methods depend on.
type Deps struct {
	RateLookup exchange.RateLookup
	Converter  exchange.Converter
	Logger     *slog.Logger
	// Closers are released by App.Close in reverse order.
	Closers []io.Closer
}

type App struct {
	Deps            *Deps
	Config          *config.App
	Processors      []processor.Processor
	CheckoutService *checkout.Service
}

// New builds the payment methods from cfg and the checkout service that
// charges them. The card comes first, then the crypto wallet.
func New(deps *Deps, cfg *config.App, reporter checkout.Reporter) *App {
	opts := []processor.Option{processor.WithLogger(deps.Logger)}
	processors := []processor.Processor{
		processor.NewCardPayment(
			cfg.Card.Number,
			cfg.Card.CVV,
			cfg.Card.ExpiryYear,
			opts...,
		),
		processor.NewCryptoPayment(
			cfg.Wallet.Address,
			money.Code(cfg.Wallet.Asset),
			money.Code(cfg.Charge.QuoteCurrency),
			deps.RateLookup,
			deps.Converter,
			opts...,
		),
	}
	return &App{
		Deps:            deps,
		Config:          cfg,
		Processors:      processors,
		CheckoutService: checkout.New(processors, reporter, deps.Logger),
	}
}

// Close releases infrastructure held by Deps.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
