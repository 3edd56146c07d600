// Package conversion implements exchange.Converter for exchangerate-api.com
// style endpoints.
package conversion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amirasaad/paymethods/pkg/config"
	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Client fetches fiat conversion rates. It owns one resty client for its
// whole lifetime.
type Client struct {
	name   string
	apiKey string
	http   *resty.Client
	logger *slog.Logger
}

// apiResponse represents the v6 response from the ExchangeRate API.
// See: https://www.exchangerate-api.com/docs/standard-requests
// The keyed endpoint returns conversion_rates, the open endpoint returns rates.
// A null rate decodes to a nil pointer.
type apiResponse struct {
	Result          string                      `json:"result"`
	BaseCode        string                      `json:"base_code"`
	ConversionRates map[string]*decimal.Decimal `json:"conversion_rates"`
	Rates           map[string]*decimal.Decimal `json:"rates"`
	ErrorType       string                      `json:"error-type,omitempty"`
}

// New creates a conversion client from config.
func New(cfg *config.ConversionAPI, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.ApiUrl, "/")).
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Accept", "application/json")
	return &Client{
		name:   cfg.Name,
		apiKey: cfg.ApiKey,
		http:   httpClient,
		logger: logger.With("provider", cfg.Name),
	}
}

// Name returns the provider's name for logging and identification.
func (c *Client) Name() string {
	return c.name
}

// GetExchangeRate returns how many units of to one unit of from buys. Errors,
// including a missing, null or non-positive rate, are logged and returned
// wrapped in exchange.ErrRateUnavailable together with money.ZeroRate.
func (c *Client) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	rate, err := c.fetch(ctx, from, to)
	if err != nil {
		c.logger.ErrorContext(ctx, "Exchange rate lookup failed", "from", from, "to", to, "error", err)
		return money.ZeroRate, fmt.Errorf("%w: %w", exchange.ErrRateUnavailable,
			&exchange.ProviderError{Provider: c.name, Err: err})
	}
	c.logger.DebugContext(ctx, "Exchange rate fetched", "from", from, "to", to, "rate", rate)
	return rate, nil
}

func (c *Client) latestPath() string {
	if c.apiKey != "" {
		return "/{key}/latest/{base}"
	}
	return "/latest/{base}"
}

func (c *Client) fetch(ctx context.Context, from, to string) (decimal.Decimal, error) {
	req := c.http.R().
		SetContext(ctx).
		SetPathParam("base", from)
	if c.apiKey != "" {
		req.SetPathParam("key", c.apiKey)
	}

	resp, err := req.Get(c.latestPath())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to make request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		body := resp.String()
		if len(body) > 512 {
			body = body[:512]
		}
		return decimal.Zero, fmt.Errorf("API returned status %d: %s", resp.StatusCode(), body)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Result != "success" {
		return decimal.Zero, fmt.Errorf("API returned result=%s error-type=%s", apiResp.Result, apiResp.ErrorType)
	}

	rates := apiResp.ConversionRates
	if rates == nil {
		rates = apiResp.Rates
	}
	rate := rates[to]
	if rate == nil {
		return decimal.Zero, fmt.Errorf("%w: currency %s not in %s rates", exchange.ErrRateNotFound, to, from)
	}
	if !money.ValidRate(*rate) {
		return decimal.Zero, fmt.Errorf("%w: %s->%s returned %s", money.ErrInvalidRate, from, to, rate)
	}
	return *rate, nil
}

var _ exchange.Converter = (*Client)(nil)
