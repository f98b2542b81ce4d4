// Package scoring combines the indicator set of a single ticker into a
// bounded 0-100 attractiveness score with a per-category breakdown,
// threshold tags and a long-form commentary.
package scoring

import (
	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/indicator"
	"github.com/moriq/kabuscan/internal/strategy"
	"github.com/moriq/kabuscan/internal/strategyconfig"
	"github.com/moriq/kabuscan/pkg/logger"
)

// minBars is the fewest bars the engine will score: MACD's slow EMA is the
// longest hard requirement. Longer-window indicators (MA75, senkou spans)
// degrade to absence below their own lookbacks.
const minBars = 26

// Engine computes ScoreResults. Deterministic and side-effect-free given
// its inputs; the injected logger only emits Debug traces.
// ⭐ SSOT: スコア計算はこのエンジンだけ
type Engine struct {
	cfg     *strategyconfig.Config
	deriver *strategy.Deriver
	logger  *logger.Logger
}

// NewEngine creates a new scoring engine
func NewEngine(cfg *strategyconfig.Config, log *logger.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		deriver: strategy.NewDeriver(cfg.Strategy),
		logger:  log,
	}
}

// Score evaluates one ticker. Missing-data conditions come back as
// contracts.ErrEmptySeries / ErrInsufficientData ("no result"), data that
// violates the bar contract as a regular error; the engine never panics
// over per-ticker data.
func (e *Engine) Score(code string, series contracts.PriceSeries, fund *contracts.Fundamentals) (*contracts.ScoreResult, error) {
	if series.Len() == 0 {
		return nil, contracts.ErrEmptySeries
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if series.Len() < minBars {
		return nil, contracts.ErrInsufficientData
	}

	price, _ := series.LastClose()
	ind := indicator.Compute(series)

	plan, err := e.plan(code, ind, series, fund)
	if err != nil {
		return nil, err
	}

	breakdown := map[string]int{
		contracts.CategoryTrend:        e.scoreTrend(ind, price),
		contracts.CategoryPullback:     e.scorePullback(ind, price),
		contracts.CategoryMomentum:     e.scoreMomentum(ind.RSI14),
		contracts.CategoryVolume:       e.scoreVolume(ind),
		contracts.CategoryFundamentals: e.scoreFundamentals(fund),
		contracts.CategoryRiskReward:   e.scoreRiskReward(plan.RiskReward),
	}

	total := 0
	for _, pts := range breakdown {
		total += pts
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	result := &contracts.ScoreResult{
		Code:       code,
		Price:      price,
		Score:      total,
		Breakdown:  breakdown,
		MA25:       ind.MA25.Or(0),
		Deviation:  deviationPct(ind, price),
		RSI:        ind.RSI14.Or(0),
		RiskReward: plan.RiskReward,
	}
	if fund.HasPBR() {
		result.PBR = *fund.PriceToBook
	}
	if fund.HasPER() {
		result.PER = *fund.TrailingPE
	}

	result.Tags = e.buildTags(result, ind)
	result.Narrative = e.narrative(result, ind, series)

	e.logger.WithFields(map[string]interface{}{
		"code":      code,
		"price":     price,
		"score":     total,
		"breakdown": breakdown,
	}).Debug("Scored ticker")

	return result, nil
}

// Plan derives the trade plan for one ticker from the same indicator
// inputs the score uses.
func (e *Engine) Plan(code string, series contracts.PriceSeries, fund *contracts.Fundamentals) (*contracts.StrategyPlan, error) {
	if series.Len() == 0 {
		return nil, contracts.ErrEmptySeries
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	return e.plan(code, indicator.Compute(series), series, fund)
}

func (e *Engine) plan(code string, ind indicator.Set, series contracts.PriceSeries, fund *contracts.Fundamentals) (*contracts.StrategyPlan, error) {
	price, ok := series.LastClose()
	if !ok {
		return nil, contracts.ErrEmptySeries
	}

	recentHigh, _ := series.RecentHigh(e.cfg.Strategy.TargetLookback)
	return e.deriver.Derive(code, ind, price, recentHigh, fund)
}

// deviationPct is the % distance of price from MA25, 0 when MA25 is undefined
func deviationPct(ind indicator.Set, price float64) float64 {
	if !ind.MA25.Valid || ind.MA25.Float64 == 0 {
		return 0
	}
	return (price - ind.MA25.Float64) / ind.MA25.Float64 * 100
}
