// Package quote implements exchange.RateLookup against a Coinbase-style
// spot price endpoint.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amirasaad/paymethods/pkg/config"
	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

var errMissingAmount = errors.New("response has no data.amount field")

// Client fetches spot prices. It owns a single resty client that is reused
// for every call.
type Client struct {
	name   string
	http   *resty.Client
	logger *slog.Logger
}

// spotResponse mirrors GET /prices/{pair}/spot:
//
//	{"data":{"base":"BTC","currency":"USD","amount":"60000.12"}}
//
// amount may arrive as a JSON string or number.
type spotResponse struct {
	Data struct {
		Base     string           `json:"base"`
		Currency string           `json:"currency"`
		Amount   *decimal.Decimal `json:"amount"`
	} `json:"data"`
}

// New creates a quote client from config.
func New(cfg *config.QuoteAPI, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Accept", "application/json")
	return &Client{
		name:   cfg.Name,
		http:   httpClient,
		logger: logger.With("provider", cfg.Name),
	}
}

// Name returns the provider's name for logging and identification.
func (c *Client) Name() string {
	return c.name
}

// GetCurrentRate returns the spot price for pair (e.g. "BTC-USD"). Errors,
// including a null or non-positive amount, are logged and returned wrapped in
// exchange.ErrRateUnavailable together with money.ZeroRate.
func (c *Client) GetCurrentRate(ctx context.Context, pair string) (decimal.Decimal, error) {
	rate, err := c.fetch(ctx, pair)
	if err != nil {
		c.logger.ErrorContext(ctx, "Spot price lookup failed", "pair", pair, "error", err)
		return money.ZeroRate, fmt.Errorf("%w: %w", exchange.ErrRateUnavailable,
			&exchange.ProviderError{Provider: c.name, Err: err})
	}
	c.logger.DebugContext(ctx, "Spot price fetched", "pair", pair, "rate", rate)
	return rate, nil
}

func (c *Client) fetch(ctx context.Context, pair string) (decimal.Decimal, error) {
	base, quote, err := exchange.SplitPair(pair)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("pair", exchange.JoinPair(base, quote)).
		Get("/prices/{pair}/spot")
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to make request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return decimal.Zero, fmt.Errorf("API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var body spotResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.Data.Amount == nil {
		return decimal.Zero, errMissingAmount
	}
	if !money.ValidRate(*body.Data.Amount) {
		return decimal.Zero, fmt.Errorf("%w: %s returned %s", money.ErrInvalidRate, pair, body.Data.Amount)
	}
	return *body.Data.Amount, nil
}

var _ exchange.RateLookup = (*Client)(nil)
