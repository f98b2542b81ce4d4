// Package market serves price data to the scoring pipeline. It layers a
// Redis cache and an optional PostgreSQL bar store in front of the Yahoo
// Finance client, so a full universe scan only hits Yahoo for tickers
// nothing fresher knows about.
package market

import (
	"context"
	"fmt"
	"time"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/external/yahoo"
	"github.com/moriq/kabuscan/internal/store"
	"github.com/moriq/kabuscan/pkg/logger"
	"github.com/moriq/kabuscan/pkg/redis"
)

// Cache TTLs. 株価は1時間、銘柄名は24時間。
const (
	historyTTL      = 1 * time.Hour
	fundamentalsTTL = 6 * time.Hour
	nameTTL         = 24 * time.Hour
	earningsTTL     = 24 * time.Hour
)

// Provider implements ranking.PriceProvider, ranking.NameResolver and
// ranking.EarningsLookup over the layered data sources.
// ⭐ SSOT: 市場データの取得経路はこのプロバイダーだけ
type Provider struct {
	client   *yahoo.Client
	cache    *redis.Cache
	bars     *store.BarRepository // nil without DATABASE_URL
	logger   *logger.Logger
	lookback int // months of history per fetch
	nameMap  map[string]string
}

// NewProvider creates a market data provider. bars may be nil when no
// database is configured; nameMap seeds code→name resolution before any
// scraping happens.
func NewProvider(client *yahoo.Client, cache *redis.Cache, bars *store.BarRepository, nameMap map[string]string, lookbackMonths int, log *logger.Logger) *Provider {
	if nameMap == nil {
		nameMap = map[string]string{}
	}
	return &Provider{
		client:   client,
		cache:    cache,
		bars:     bars,
		logger:   log,
		lookback: lookbackMonths,
		nameMap:  nameMap,
	}
}

// History returns the daily series for one ticker: Redis first, then the
// bar store when it already covers today, then Yahoo. Fresh Yahoo data is
// written back to both layers.
func (p *Provider) History(ctx context.Context, code string) (contracts.PriceSeries, error) {
	cacheKey := fmt.Sprintf("history:%s", code)

	var cached contracts.PriceSeries
	if hit, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	if series, ok := p.storedHistory(ctx, code); ok {
		_ = p.cache.Set(ctx, cacheKey, series, historyTTL)
		return series, nil
	}

	series, err := p.client.FetchHistory(ctx, code, p.lookback)
	if err != nil {
		return nil, err
	}

	_ = p.cache.Set(ctx, cacheKey, series, historyTTL)
	p.persist(ctx, code, series)

	return series, nil
}

// storedHistory serves from PostgreSQL only when the stored series
// already includes the latest completed session
func (p *Provider) storedHistory(ctx context.Context, code string) (contracts.PriceSeries, bool) {
	if p.bars == nil {
		return nil, false
	}

	latest, err := p.bars.LatestDate(ctx, code)
	if err != nil || latest.IsZero() {
		return nil, false
	}
	if time.Since(latest) > 24*time.Hour {
		return nil, false
	}

	since := time.Now().AddDate(0, -p.lookback, 0)
	series, err := p.bars.LoadBars(ctx, code, since)
	if err != nil || series.Len() == 0 {
		return nil, false
	}
	return series, true
}

func (p *Provider) persist(ctx context.Context, code string, series contracts.PriceSeries) {
	if p.bars == nil {
		return
	}
	if err := p.bars.SaveBars(ctx, code, series); err != nil {
		p.logger.WithError(err).WithField("code", code).Warn("Failed to persist bars")
	}
}

// Fundamentals returns the valuation snapshot, cached per ticker
func (p *Provider) Fundamentals(ctx context.Context, code string) (*contracts.Fundamentals, error) {
	cacheKey := fmt.Sprintf("fundamentals:%s", code)

	var cached contracts.Fundamentals
	if hit, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	fund, err := p.client.FetchFundamentals(ctx, code)
	if err != nil {
		return nil, err
	}

	_ = p.cache.Set(ctx, cacheKey, fund, fundamentalsTTL)
	return fund, nil
}

// Name resolves the display name: seed map, then Redis, then the quote
// page scrape. Unresolvable names come back as the bare code so ranking
// rows never go nameless.
func (p *Provider) Name(ctx context.Context, code string) string {
	if name, ok := p.nameMap[code]; ok {
		return name
	}

	cacheKey := fmt.Sprintf("name:%s", code)
	var cached string
	if hit, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached
	}

	name, err := p.client.FetchName(ctx, code)
	if err != nil {
		p.logger.WithError(err).WithField("code", code).Debug("Name resolution failed")
		return code
	}

	_ = p.cache.Set(ctx, cacheKey, name, nameTTL)
	return name
}

// NextEarningsDate returns the next earnings date, cached per ticker
func (p *Provider) NextEarningsDate(ctx context.Context, code string) string {
	cacheKey := fmt.Sprintf("earnings:%s", code)

	var cached string
	if hit, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached
	}

	date := p.client.FetchEarningsDate(ctx, code)
	_ = p.cache.Set(ctx, cacheKey, date, earningsTTL)
	return date
}
