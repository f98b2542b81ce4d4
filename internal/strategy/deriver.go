// Package strategy derives a concrete swing-trade plan (entry, stop,
// target, risk/reward) from the computed indicators of a single ticker.
package strategy

import (
	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/indicator"
	"github.com/moriq/kabuscan/internal/strategyconfig"
)

// rrEpsilon floor-clamps the risk/reward denominator. 0.1円: the stop
// distance below which the ratio is no longer meaningful.
const rrEpsilon = 0.1

// Deriver turns indicators into a StrategyPlan. Pure; no I/O.
type Deriver struct {
	cfg strategyconfig.Strategy
}

// NewDeriver creates a new strategy deriver
func NewDeriver(cfg strategyconfig.Strategy) *Deriver {
	return &Deriver{cfg: cfg}
}

// Derive builds the trade plan for one ticker. recentHigh is the highest
// high over the configured lookback (normally 60 bars) and serves as the
// profit target. Fundamentals may be nil; they only affect the narrative.
func (d *Deriver) Derive(code string, ind indicator.Set, price, recentHigh float64, fund *contracts.Fundamentals) (*contracts.StrategyPlan, error) {
	if price <= 0 {
		return nil, contracts.ErrEmptySeries
	}

	entry, policy := d.selectEntry(ind, price)

	atr := ind.ATR14.Or(0)
	stop := entry - d.cfg.StopATRMult*atr

	// 利確目標: 直近高値。エントリーに近すぎるならATR基準に広げる
	target := recentHigh
	if target-entry < d.cfg.MinTargetATRMult*atr {
		target = entry + d.cfg.WideTargetATR*atr
	}

	upside := target - entry
	downside := entry - stop
	if downside < rrEpsilon {
		downside = rrEpsilon
	}
	rr := upside / downside
	if rr < 0 {
		rr = 0
	}

	plan := &contracts.StrategyPlan{
		Code:         code,
		CurrentPrice: price,
		EntryPrice:   entry,
		StopLoss:     stop,
		TargetProfit: target,
		RiskReward:   rr,
		Policy:       policy,
	}
	plan.Narrative = d.narrative(plan, ind, fund)

	return plan, nil
}

// selectEntry walks the entry decision table top to bottom, strongest
// trend first; the first matching row wins.
func (d *Deriver) selectEntry(ind indicator.Set, price float64) (float64, contracts.EntryPolicy) {
	rsi, rsiOK := ind.RSI14.Float64, ind.RSI14.Valid

	switch {
	case above(price, ind.MA5) && rsiOK && rsi >= d.cfg.MomentumRSI:
		// 強トレンド: 押し目を待たず成行
		return price, contracts.PolicyMomentumBuy

	case above(price, ind.MA25) && rsiOK && rsi >= d.cfg.TrendFollowRSI:
		return ind.MA5.Or(price), contracts.PolicyTrendFollow

	case above(price, ind.MA25):
		return ind.MA25.Float64, contracts.PolicyDipBuy

	case above(price, ind.MA75):
		return ind.MA75.Float64, contracts.PolicyRebound

	default:
		return price, contracts.PolicyBottomFishing
	}
}

// above reports price > ma, false when the MA is undefined
func above(price float64, ma indicator.Value) bool {
	return ma.Valid && price > ma.Float64
}
