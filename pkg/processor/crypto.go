package processor

import (
	"context"
	"fmt"

	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
	"github.com/shopspring/decimal"
)

// MinWalletAddressLength is the shortest wallet address accepted.
const MinWalletAddressLength = 30

type walletDetails struct {
	Address string `validate:"min=30"`
}

// CryptoPayment prices the charge in a crypto asset through two chained
// lookups: asset→quote spot price, then quote→fiat conversion.
type CryptoPayment struct {
	address   string
	asset     money.Code
	quote     money.Code
	rates     exchange.RateLookup
	converter exchange.Converter
	opts      options
}

// NewCryptoPayment creates a crypto payment for the wallet at address.
// asset is the coin the charge is priced in (e.g. BTC) and quote the
// currency its spot price is quoted in (e.g. USD).
func NewCryptoPayment(
	address string,
	asset, quote money.Code,
	rates exchange.RateLookup,
	converter exchange.Converter,
	opts ...Option,
) *CryptoPayment {
	return &CryptoPayment{
		address:   address,
		asset:     asset,
		quote:     quote,
		rates:     rates,
		converter: converter,
		opts:      newOptions(string(asset), opts),
	}
}

// Method returns the asset code, e.g. "BTC".
func (c *CryptoPayment) Method() string { return string(c.asset) }

// ValidateDetails reports whether the wallet address has at least
// MinWalletAddressLength characters.
func (c *CryptoPayment) ValidateDetails() bool {
	return validDetails(c.opts.logger, walletDetails{Address: c.address})
}

// ExecuteTransaction runs the lookups in order and stops at the first
// failure. The amount's currency is the fiat the second lookup converts to.
func (c *CryptoPayment) ExecuteTransaction(ctx context.Context, amount money.Money) Result {
	method := c.Method()
	fiat := amount.Currency()
	log := c.opts.logger.With("amount", amount.String())

	pair := exchange.JoinPair(string(c.asset), string(c.quote))
	spot, err := c.rates.GetCurrentRate(ctx, pair)
	if err = usableRate(spot, err); err != nil {
		log.WarnContext(ctx, "Spot price unavailable", "pair", pair, "error", err)
		return failed(method, APIFailure(c.asset), fmt.Errorf("spot price %s: %w", pair, err))
	}

	conversion, err := c.converter.GetExchangeRate(ctx, string(c.quote), string(fiat))
	if err = usableRate(conversion, err); err != nil {
		log.WarnContext(ctx, "Conversion rate unavailable", "from", c.quote, "to", fiat, "error", err)
		return failed(method, APIFailure(fiat), fmt.Errorf("conversion %s→%s: %w", c.quote, fiat, err))
	}

	combined, err := money.CombineRates(spot, conversion)
	if err != nil {
		return failed(method, APIFailure(fiat), err)
	}
	cryptoAmount, err := amount.DivideByRate(combined)
	if err != nil {
		return failed(method, APIFailure(fiat), err)
	}

	res := confirmed(method, c.opts.newSuffix())
	res.CryptoAmount = cryptoAmount
	res.CombinedRate = combined
	log.InfoContext(ctx, "Crypto payment priced",
		"spot", spot,
		"conversion", conversion,
		"combined_rate", combined,
		"crypto_amount", cryptoAmount.StringFixed(money.CryptoDecimals),
		"transaction_id", res.TransactionID,
	)
	return res
}

// usableRate folds a zero or negative rate into an error so that a source
// returning (0, nil) is treated the same as a failed lookup.
func usableRate(rate decimal.Decimal, err error) error {
	if err != nil {
		return err
	}
	if !money.ValidRate(rate) {
		return fmt.Errorf("%w: got %s", money.ErrInvalidRate, rate)
	}
	return nil
}

var _ Processor = (*CryptoPayment)(nil)
