package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	infra_cache "github.com/amirasaad/paymethods/infra/cache"
	"github.com/amirasaad/paymethods/infra/provider/cached"
	"github.com/amirasaad/paymethods/infra/provider/conversion"
	"github.com/amirasaad/paymethods/infra/provider/quote"
	"github.com/amirasaad/paymethods/pkg/app"
	"github.com/amirasaad/paymethods/pkg/config"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
)

// InitializeDependencies builds the logger, rate clients and optional rate
// cache described by cfg. Logs go to logOut.
func InitializeDependencies(ctx context.Context, cfg *config.App, logOut io.Writer) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := SetupLogger(cfg.Log, logOut)
	deps.Logger = logger

	var rates exchange.RateLookup = quote.New(cfg.Quote, logger)
	var converter exchange.Converter = conversion.New(cfg.Conversion, logger)

	if cfg.ExchangeRateCache.TTL <= 0 {
		logger.Debug("Exchange rate caching disabled")
		deps.RateLookup, deps.Converter = rates, converter
		return deps, nil
	}

	rateCache, closer, err := newRateCache(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		deps.Closers = append(deps.Closers, closer)
	}
	deps.RateLookup = cached.NewRateLookup(rates, rateCache, cfg.Quote.Name, logger)
	deps.Converter = cached.NewConverter(converter, rateCache, cfg.Conversion.Name, logger)
	return deps, nil
}

func newRateCache(ctx context.Context, cfg *config.App, logger *slog.Logger) (
	exchange.RateCache,
	io.Closer,
	error,
) {
	if cfg.Redis.URL == "" {
		logger.Debug("Using in-memory exchange rate cache", "ttl", cfg.ExchangeRateCache.TTL)
		return exchange.NewCache(cfg.ExchangeRateCache.TTL), nil, nil
	}
	redisCache, err := infra_cache.NewRedisRateCache(ctx, cfg.Redis, cfg.ExchangeRateCache, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis rate cache: %w", err)
	}
	logger.Debug("Using redis exchange rate cache", "ttl", cfg.ExchangeRateCache.TTL)
	return redisCache, redisCache, nil
}
