// Package cached wraps rate sources with a read-through exchange.RateCache.
// Concurrent identical lookups share one upstream call and failed lookups are
// never cached.
package cached

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Cache scopes keep spot prices and conversion rates apart when both
// decorators share one RateCache.
const (
	ScopeSpot       = "spot"
	ScopeConversion = "conversion"
)

// scopedCache prefixes the from side of every key with a scope.
type scopedCache struct {
	next  exchange.RateCache
	scope string
}

func (s scopedCache) key(from string) string {
	return s.scope + ":" + from
}

func (s scopedCache) GetRate(ctx context.Context, from, to string) (*exchange.RateInfo, error) {
	info, err := s.next.GetRate(ctx, s.key(from), to)
	if err != nil || info == nil {
		return info, err
	}
	out := *info
	out.FromCurrency = from
	return &out, nil
}

func (s scopedCache) StoreRate(ctx context.Context, rate *exchange.RateInfo) error {
	scoped := *rate
	scoped.FromCurrency = s.key(rate.FromCurrency)
	return s.next.StoreRate(ctx, &scoped)
}

type loader func(ctx context.Context) (decimal.Decimal, error)

type readThrough struct {
	cache    exchange.RateCache
	provider string
	inflight singleflight.Group
	logger   *slog.Logger
}

func (r *readThrough) get(ctx context.Context, from, to string, load loader) (decimal.Decimal, error) {
	log := r.logger.With("from", from, "to", to)

	if info, err := r.cache.GetRate(ctx, from, to); err != nil {
		log.WarnContext(ctx, "Rate cache read failed", "error", err)
	} else if info != nil && money.ValidRate(info.Rate) {
		log.DebugContext(ctx, "Rate cache hit", "rate", info.Rate)
		return info.Rate, nil
	}

	v, err, shared := r.inflight.Do(from+":"+to, func() (any, error) {
		rate, err := load(ctx)
		if err != nil || !money.ValidRate(rate) {
			return rate, err
		}
		if err := r.cache.StoreRate(ctx, &exchange.RateInfo{
			FromCurrency: from,
			ToCurrency:   to,
			Rate:         rate,
			Timestamp:    time.Now().UTC(),
			Provider:     r.provider,
		}); err != nil {
			log.WarnContext(ctx, "Rate cache write failed", "error", err)
		}
		return rate, nil
	})
	if shared {
		log.DebugContext(ctx, "Rate lookup shared with concurrent caller")
	}
	rate, _ := v.(decimal.Decimal)
	if err != nil {
		return money.ZeroRate, err
	}
	return rate, nil
}

// RateLookup caches spot prices by pair.
type RateLookup struct {
	next exchange.RateLookup
	rt   *readThrough
}

// NewRateLookup wraps next with cache. Entries are stored under ScopeSpot.
func NewRateLookup(next exchange.RateLookup, cache exchange.RateCache, provider string, logger *slog.Logger) *RateLookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLookup{
		next: next,
		rt: &readThrough{
			cache:    scopedCache{next: cache, scope: ScopeSpot},
			provider: provider,
			logger:   logger.With("cache", ScopeSpot),
		},
	}
}

// GetCurrentRate serves pair from cache or the wrapped lookup.
func (l *RateLookup) GetCurrentRate(ctx context.Context, pair string) (decimal.Decimal, error) {
	base, quote, err := exchange.SplitPair(pair)
	if err != nil {
		// let the upstream report malformed pairs in its own terms
		return l.next.GetCurrentRate(ctx, pair)
	}
	return l.rt.get(ctx, base, quote, func(ctx context.Context) (decimal.Decimal, error) {
		return l.next.GetCurrentRate(ctx, pair)
	})
}

// Converter caches fiat conversion rates by pair.
type Converter struct {
	next exchange.Converter
	rt   *readThrough
}

// NewConverter wraps next with cache. Entries are stored under ScopeConversion.
func NewConverter(next exchange.Converter, cache exchange.RateCache, provider string, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		next: next,
		rt: &readThrough{
			cache:    scopedCache{next: cache, scope: ScopeConversion},
			provider: provider,
			logger:   logger.With("cache", ScopeConversion),
		},
	}
}

// GetExchangeRate serves from→to from cache or the wrapped converter.
func (c *Converter) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	return c.rt.get(ctx, from, to, func(ctx context.Context) (decimal.Decimal, error) {
		return c.next.GetExchangeRate(ctx, from, to)
	})
}

var (
	_ exchange.RateLookup = (*RateLookup)(nil)
	_ exchange.Converter  = (*Converter)(nil)
)
