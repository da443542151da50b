package forecastcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yanqian/climate-advisor/internal/domain/climate"
)

// DefaultSize is used when the configured capacity is not positive.
const DefaultSize = 100

// Provider decorates a ForecastProvider with a bounded LRU keyed by the request inputs.
// Entries never expire by time. Concurrent misses for the same key may both reach the
// upstream; the last writer wins.
type Provider struct {
	next   climate.ForecastProvider
	cache  *lru.Cache[string, climate.Series]
	logger *slog.Logger
}

// New wraps next with a cache holding at most size series.
func New(next climate.ForecastProvider, size int, logger *slog.Logger) (*Provider, error) {
	if next == nil {
		return nil, errors.New("forecast cache requires an upstream provider")
	}
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[string, climate.Series](size)
	if err != nil {
		return nil, fmt.Errorf("create forecast lru: %w", err)
	}
	return &Provider{
		next:   next,
		cache:  cache,
		logger: logger.With("component", "forecastcache"),
	}, nil
}

// Fetch implements climate.ForecastProvider. Failed fetches are not cached.
func (p *Provider) Fetch(ctx context.Context, req climate.FetchRequest) (climate.Series, error) {
	key := req.CacheKey()
	if series, ok := p.cache.Get(key); ok {
		p.logger.Debug("forecast cache hit", "key", key)
		return series.Clone(), nil
	}

	series, err := p.next.Fetch(ctx, req)
	if err != nil {
		return climate.Series{}, err
	}
	if evicted := p.cache.Add(key, series.Clone()); evicted {
		p.logger.Debug("forecast cache evicted oldest entry")
	}
	p.logger.Debug("forecast cache stored", "key", key, "entries", p.cache.Len())
	return series, nil
}
