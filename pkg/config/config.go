package config

import (
	"fmt"
	"time"

	"github.com/amirasaad/paymethods/pkg/money"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[paymethods]"`
}

// QuoteAPI configures the spot price endpoint (Coinbase v2 shape).
type QuoteAPI struct {
	Name        string        `envconfig:"NAME" default:"coinbase"`
	URL         string        `envconfig:"URL" default:"https://api.coinbase.com/v2"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// ConversionAPI configures the fiat conversion endpoint (exchangerate-api v6 shape).
//
//revive:disable
type ConversionAPI struct {
	Name        string        `envconfig:"NAME" default:"exchangerate-api"`
	ApiKey      string        `envconfig:"API_KEY"`
	ApiUrl      string        `envconfig:"URL" default:"https://open.er-api.com/v6"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

//revive:enable

// ExchangeRateCache configures rate caching. A zero TTL disables caching.
type ExchangeRateCache struct {
	TTL    time.Duration `envconfig:"TTL" default:"1m"`
	Prefix string        `envconfig:"CACHE_PREFIX" default:"exr:rate:"`
}

// Redis is optional; when URL is empty rates are cached in memory.
type Redis struct {
	URL          string        `envconfig:"URL"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// Charge is the amount every payment method is charged.
type Charge struct {
	Amount        string `envconfig:"AMOUNT" default:"5000.00"`
	Currency      string `envconfig:"CURRENCY" default:"ZAR"`
	QuoteCurrency string `envconfig:"QUOTE_CURRENCY" default:"USD"`
}

type Card struct {
	Number     string `envconfig:"NUMBER" default:"4111111111111111"`
	CVV        string `envconfig:"CVV" default:"123"`
	ExpiryYear int    `envconfig:"EXPIRY_YEAR" default:"2028"`
}

type Wallet struct {
	Address string `envconfig:"ADDRESS" default:"bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"`
	Asset   string `envconfig:"ASSET" default:"BTC"`
}

type App struct {
	Env               string             `envconfig:"APP_ENV" default:"development"`
	Log               *Log               `envconfig:"LOG"`
	Quote             *QuoteAPI          `envconfig:"QUOTE_API"`
	Conversion        *ConversionAPI     `envconfig:"CONVERSION_API"`
	ExchangeRateCache *ExchangeRateCache `envconfig:"EXCHANGE_RATE_CACHE"`
	Redis             *Redis             `envconfig:"REDIS"`
	Charge            *Charge            `envconfig:"CHARGE"`
	Card              *Card              `envconfig:"CARD"`
	Wallet            *Wallet            `envconfig:"WALLET"`
}

// ChargeAmount parses the configured charge into a Money value.
func (a *App) ChargeAmount() (money.Money, error) {
	return money.Parse(a.Charge.Amount, money.Code(a.Charge.Currency))
}

// Validate checks the settings that envconfig cannot express.
func (a *App) Validate() error {
	if _, err := a.ChargeAmount(); err != nil {
		return fmt.Errorf("invalid charge: %w", err)
	}
	for name, code := range map[string]string{
		"CHARGE_QUOTE_CURRENCY": a.Charge.QuoteCurrency,
		"WALLET_ASSET":          a.Wallet.Asset,
	} {
		if !money.Code(code).IsValid() {
			return fmt.Errorf("invalid %s: %w: %q", name, money.ErrInvalidCurrency, code)
		}
	}
	if a.Quote.HTTPTimeout <= 0 || a.Conversion.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeouts must be positive")
	}
	return nil
}
