package money_test

import (
	"testing"

	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency money.Code
		expected string
		wantErr  error
	}{
		{"fiat with cents", "5000.00", money.USD, "5000.00 USD", nil},
		{"integer amount", "18", money.ZAR, "18.00 ZAR", nil},
		{"rounds on render", "0.999", money.USD, "1.00 USD", nil},
		{"zero", "0", money.EUR, "0.00 EUR", nil},
		{"negative", "-1", money.USD, "", money.ErrNegativeAmount},
		{"garbage", "12,50", money.USD, "", money.ErrInvalidAmount},
		{"bad currency", "1", money.Code("usd"), "", money.ErrInvalidCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.Parse(tt.amount, tt.currency)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.String())
			assert.Equal(t, tt.currency, m.Currency())
		})
	}
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() { money.Must("abc", money.USD) })
	assert.NotPanics(t, func() { money.Must("1.5", money.USD) })
}

func TestCode_IsValid(t *testing.T) {
	assert.True(t, money.BTC.IsValid())
	assert.True(t, money.ZAR.IsValid())
	assert.False(t, money.Code("US").IsValid())
	assert.False(t, money.Code("Usd").IsValid())
	assert.False(t, money.Code("USDT").IsValid())
}

func TestCombineRates(t *testing.T) {
	combined, err := money.CombineRates(decimal.NewFromInt(60000), decimal.NewFromInt(18))
	require.NoError(t, err)
	assert.True(t, combined.Equal(decimal.NewFromInt(1080000)), combined.String())

	_, err = money.CombineRates(decimal.Zero, decimal.NewFromInt(18))
	require.ErrorIs(t, err, money.ErrInvalidRate)

	_, err = money.CombineRates(decimal.NewFromInt(60000), decimal.NewFromInt(-1))
	require.ErrorIs(t, err, money.ErrInvalidRate)
}

func TestDivideByRate(t *testing.T) {
	amount := money.Must("5000.00", money.ZAR)

	got, err := amount.DivideByRate(decimal.NewFromInt(1080000))
	require.NoError(t, err)
	assert.Equal(t, "0.0046296296", got.StringFixed(money.CryptoDecimals))

	_, err = amount.DivideByRate(money.ZeroRate)
	require.ErrorIs(t, err, money.ErrInvalidRate)
}

func TestValidRate(t *testing.T) {
	assert.False(t, money.ValidRate(money.ZeroRate))
	assert.False(t, money.ValidRate(decimal.NewFromInt(-3)))
	assert.True(t, money.ValidRate(decimal.RequireFromString("0.0001")))
}
