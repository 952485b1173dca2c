// Package pricer resolves asset symbols to USD unit prices during a
// portfolio sync.
package pricer

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"coinvault/internal/exchange"
	"coinvault/internal/logger"
)

// stableValueUnits are priced at exactly 1 USD with no network call.
var stableValueUnits = map[string]bool{
	"USD":  true,
	"USDT": true,
}

// Pricer resolves a symbol to a USD unit price through the exchange that
// reported the balance. A nil cache disables caching; cache failures are
// treated as misses and never fail a lookup.
type Pricer struct {
	cache *redis.Client
	ttl   time.Duration
}

// New creates a Pricer. Pass a nil cache to price without one.
func New(cache *redis.Client, ttl time.Duration) *Pricer {
	return &Pricer{cache: cache, ttl: ttl}
}

// Price returns the USD unit price for symbol, in order of preference:
// stablecoin short-circuit, cache hit, then a SYMBOL/USDT ticker lookup on
// the given client. Any lookup failure degrades to 0 so one unpriceable
// asset never blocks the rest of the sync.
func (p *Pricer) Price(ctx context.Context, client exchange.Client, symbol string) float64 {
	if stableValueUnits[symbol] {
		return 1
	}

	cacheKey := "price:" + client.Name() + ":" + symbol
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey).Result(); err == nil {
			if price, err := strconv.ParseFloat(cached, 64); err == nil {
				return price
			}
		}
	}

	ticker, err := client.FetchTicker(ctx, symbol+"/USDT")
	if err != nil {
		logger.Get().Warnw("could not resolve price",
			"symbol", symbol,
			"exchange", client.Name(),
			"error", err.Error(),
		)
		return 0
	}

	if p.cache != nil && ticker.Last > 0 {
		if err := p.cache.Set(ctx, cacheKey, strconv.FormatFloat(ticker.Last, 'f', -1, 64), p.ttl).Err(); err != nil {
			logger.Get().Debugw("price cache write failed", "symbol", symbol, "error", err.Error())
		}
	}
	return ticker.Last
}
