// Package ranking runs the scoring engine over a ticker universe with a
// bounded worker pool and produces the sorted score ranking.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/scoring"
	"github.com/moriq/kabuscan/internal/strategyconfig"
	"github.com/moriq/kabuscan/pkg/logger"
)

// PriceProvider supplies already-fetched market data. Both calls may fail
// per ticker; failures are skips, never batch aborts.
type PriceProvider interface {
	History(ctx context.Context, code string) (contracts.PriceSeries, error)
	Fundamentals(ctx context.Context, code string) (*contracts.Fundamentals, error)
}

// NameResolver resolves a ticker code to a display name
type NameResolver interface {
	Name(ctx context.Context, code string) string
}

// EarningsLookup finds the next earnings announcement date, "-" unknown
type EarningsLookup interface {
	NextEarningsDate(ctx context.Context, code string) string
}

// Progress reports scan completion, called after each ticker finishes
type Progress func(done, total int)

// Orchestrator coordinates a universe scan
// ⭐ SSOT: ユニバースの採点はここだけ
type Orchestrator struct {
	provider PriceProvider
	engine   *scoring.Engine
	cfg      *strategyconfig.Config
	names    NameResolver
	earnings EarningsLookup
	logger   *logger.Logger
}

// NewOrchestrator creates a new ranking orchestrator
func NewOrchestrator(provider PriceProvider, engine *scoring.Engine, cfg *strategyconfig.Config, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		engine:   engine,
		cfg:      cfg,
		logger:   log,
	}
}

// WithNames enriches ranking rows with display names
func (o *Orchestrator) WithNames(r NameResolver) *Orchestrator {
	o.names = r
	return o
}

// WithEarnings enriches top-ranked rows with the next earnings date
func (o *Orchestrator) WithEarnings(l EarningsLookup) *Orchestrator {
	o.earnings = l
	return o
}

// Scan scores every ticker in codes and returns them sorted by score
// descending, ties broken by input order. Tickers without data are
// silently skipped; progress (when non-nil) is called after each ticker.
func (o *Orchestrator) Scan(ctx context.Context, codes []string, progress Progress) ([]contracts.RankedStock, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("universe is empty")
	}

	workers := o.cfg.Scan.Workers
	if workers > len(codes) {
		workers = len(codes)
	}

	// Results keep input positions so the later stable sort breaks score
	// ties by input order.
	results := make([]*contracts.ScoreResult, len(codes))

	jobs := make(chan int)
	var wg sync.WaitGroup

	var mu sync.Mutex
	done := 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = o.scoreOne(ctx, codes[idx])

				mu.Lock()
				done++
				d := done
				mu.Unlock()
				if progress != nil {
					progress(d, len(codes))
				}
			}
		}()
	}

	for idx := range codes {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	ranked := o.rank(ctx, results)

	o.logger.WithFields(map[string]interface{}{
		"universe": len(codes),
		"scored":   len(ranked),
	}).Info("Universe scan completed")

	return ranked, nil
}

// scoreOne scores a single ticker, converting every per-ticker problem
// (missing data, provider errors, even a panic from a malformed bar) into
// a nil result so one bad ticker never aborts the batch.
func (o *Orchestrator) scoreOne(ctx context.Context, code string) (result *contracts.ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.WithFields(map[string]interface{}{
				"code":  code,
				"panic": r,
			}).Error("Recovered panic while scoring ticker")
			result = nil
		}
	}()

	series, err := o.provider.History(ctx, code)
	if err != nil {
		o.logger.WithError(err).WithField("code", code).Warn("No price history, skipping")
		return nil
	}

	// Fundamentals failures are silently treated as absent
	fund, err := o.provider.Fundamentals(ctx, code)
	if err != nil {
		fund = nil
	}

	res, err := o.engine.Score(code, series, fund)
	if err != nil {
		o.logger.WithError(err).WithField("code", code).Debug("No score for ticker")
		return nil
	}
	return res
}

// rank sorts, assigns 1-based ranks and enriches the rows
func (o *Orchestrator) rank(ctx context.Context, results []*contracts.ScoreResult) []contracts.RankedStock {
	scored := make([]*contracts.ScoreResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			scored = append(scored, r)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	ranked := make([]contracts.RankedStock, len(scored))
	for i, r := range scored {
		row := contracts.RankedStock{
			Rank:   i + 1,
			Code:   r.Code,
			Result: r,
		}
		if o.names != nil {
			row.Name = o.names.Name(ctx, r.Code)
		}
		ranked[i] = row
	}

	// Earnings dates only for the rows anyone looks at
	if o.earnings != nil {
		topN := o.cfg.Universe.TopN
		for i := range ranked {
			if i >= topN {
				break
			}
			ranked[i].Earnings = o.earnings.NextEarningsDate(ctx, ranked[i].Code)
		}
	}

	return ranked
}
