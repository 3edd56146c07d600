package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewCache(time.Minute)

	miss, err := c.GetRate(ctx, "BTC", "USD")
	require.NoError(t, err)
	assert.Nil(t, miss)

	rate := &RateInfo{FromCurrency: "BTC", ToCurrency: "USD", Rate: decimal.NewFromInt(60000)}
	require.NoError(t, c.StoreRate(ctx, rate))
	require.NoError(t, c.StoreRate(ctx, nil))

	got, err := c.GetRate(ctx, "BTC", "USD")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Rate.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.StoreRate(ctx, &RateInfo{
		FromCurrency: "USD",
		ToCurrency:   "ZAR",
		Rate:         decimal.NewFromInt(18),
	}))

	now = now.Add(30 * time.Second)
	got, err := c.GetRate(ctx, "USD", "ZAR")
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(time.Minute)
	got, err = c.GetRate(ctx, "USD", "ZAR")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSplitPair(t *testing.T) {
	tests := []struct {
		pair      string
		base      string
		quote     string
		wantError bool
	}{
		{"BTC-USD", "BTC", "USD", false},
		{" eth-eur ", "ETH", "EUR", false},
		{"BTCUSD", "", "", true},
		{"-USD", "", "", true},
		{"BTC-", "", "", true},
		{"BTC-USD-ZAR", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.pair, func(t *testing.T) {
			base, quote, err := SplitPair(tt.pair)
			if tt.wantError {
				require.ErrorIs(t, err, ErrInvalidPair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.quote, quote)
			assert.Equal(t, tt.base+"-"+tt.quote, JoinPair(base, quote))
		})
	}
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Provider: "coinbase", Err: ErrRateNotFound}
	assert.Equal(t, "provider coinbase: exchange rate not found", err.Error())
	assert.ErrorIs(t, err, ErrRateNotFound)
	assert.True(t, IsProviderError(err))
	assert.False(t, IsProviderError(ErrRateNotFound))
}
