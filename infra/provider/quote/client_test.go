package quote

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/paymethods/pkg/config"
	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(&config.QuoteAPI{Name: "test-quote", URL: srv.URL, HTTPTimeout: timeout}, logger)
}

func TestClient_GetCurrentRate(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
		wantErr  bool
	}{
		{"string amount", http.StatusOK, `{"data":{"base":"BTC","currency":"USD","amount":"60000.12"}}`, "60000.12", false},
		{"numeric amount", http.StatusOK, `{"data":{"base":"BTC","currency":"USD","amount":59999.5}}`, "59999.5", false},
		{"missing amount", http.StatusOK, `{"data":{"base":"BTC","currency":"USD"}}`, "", true},
		{"malformed amount", http.StatusOK, `{"data":{"amount":"60.000,12"}}`, "", true},
		{"invalid json", http.StatusOK, `not json`, "", true},
		{"null amount", http.StatusOK, `{"data":{"base":"BTC","currency":"USD","amount":null}}`, "", true},
		{"zero amount", http.StatusOK, `{"data":{"base":"BTC","currency":"USD","amount":"0"}}`, "", true},
		{"negative amount", http.StatusOK, `{"data":{"base":"BTC","currency":"USD","amount":-1}}`, "", true},
		{"server error", http.StatusInternalServerError, `{"errors":[]}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, time.Second)

			rate, err := c.GetCurrentRate(context.Background(), "btc-usd")
			assert.Equal(t, "/prices/BTC-USD/spot", path)
			if tt.wantErr {
				require.ErrorIs(t, err, exchange.ErrRateUnavailable)
				assert.True(t, exchange.IsProviderError(err))
				assert.True(t, rate.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, rate.Equal(decimal.RequireFromString(tt.expected)), rate.String())
		})
	}
}

func TestClient_RejectsUnusableAmounts(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		wantErrIs error
	}{
		{"null", `null`, errMissingAmount},
		{"zero string", `"0"`, money.ErrInvalidRate},
		{"zero number", `0`, money.ErrInvalidRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":{"base":"BTC","currency":"USD","amount":` + tt.amount + `}}`))
			}))
			t.Cleanup(srv.Close)
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			c := New(&config.QuoteAPI{Name: "zeros", URL: srv.URL, HTTPTimeout: time.Second}, logger)

			rate, err := c.GetCurrentRate(context.Background(), "BTC-USD")
			require.ErrorIs(t, err, tt.wantErrIs)
			require.ErrorIs(t, err, exchange.ErrRateUnavailable)
			assert.True(t, rate.IsZero())
			assert.Contains(t, logs.String(), "Spot price lookup failed")
		})
	}
}

func TestClient_InvalidPairSkipsRequest(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, time.Second)

	_, err := c.GetCurrentRate(context.Background(), "BTCUSD")
	require.ErrorIs(t, err, exchange.ErrInvalidPair)
	require.ErrorIs(t, err, exchange.ErrRateUnavailable)
	assert.False(t, called)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	rate, err := c.GetCurrentRate(context.Background(), "BTC-USD")
	require.ErrorIs(t, err, exchange.ErrRateUnavailable)
	assert.True(t, rate.IsZero())
	assert.Equal(t, "test-quote", c.Name())
}
