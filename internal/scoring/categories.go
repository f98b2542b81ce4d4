package scoring

import (
	"math"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/indicator"
)

// scoreTrend rewards an established uptrend: price above MA25, perfect
// order (MA25 > MA75), short MA leading, and a continuous bonus for a
// rising MA25 slope. Capped at cfg.Trend.Cap.
func (e *Engine) scoreTrend(ind indicator.Set, price float64) int {
	cfg := e.cfg.Scoring.Trend
	pts := 0.0

	if ind.MA25.Valid && price > ind.MA25.Float64 {
		pts += float64(cfg.BasePoints)
	}
	if ind.MA25.GreaterThan(ind.MA75) {
		pts += float64(cfg.OrderPoints)
	}
	if ind.MA5.GreaterThan(ind.MA25) {
		pts += float64(cfg.ShortPoints)
	}

	if slope := ind.MA25Slope(); slope.Valid && slope.Float64 > 0 {
		bonus := slope.Float64 * cfg.SlopeMult
		if bonus > cfg.SlopeCap {
			bonus = cfg.SlopeCap
		}
		pts += bonus
	}

	if pts > float64(cfg.Cap) {
		pts = float64(cfg.Cap)
	}
	return int(pts)
}

// scorePullback pays for sitting near the ideal shallow-dip distance from
// MA25, bell-curve shaped, and only while MA25 itself is rising: a dip is
// only a buy inside an uptrend.
func (e *Engine) scorePullback(ind indicator.Set, price float64) int {
	cfg := e.cfg.Scoring.Pullback

	if !ind.MA25.Valid || ind.MA25.Float64 == 0 {
		return 0
	}
	if slope := ind.MA25Slope(); !slope.Valid || slope.Float64 <= 0 {
		return 0
	}

	dev := (price - ind.MA25.Float64) / ind.MA25.Float64 * 100
	if dev < cfg.MinPct || dev > cfg.MaxPct {
		return 0
	}

	pts := cfg.Cap - math.Abs(dev-cfg.TargetPct)*cfg.Steepness
	if pts < 0 {
		return 0
	}
	return int(pts)
}

// scoreMomentum pays the RSI swing-continuation band in full, the band
// just below it at half, and penalizes overbought readings. Undefined RSI
// contributes nothing.
func (e *Engine) scoreMomentum(rsi indicator.Value) int {
	cfg := e.cfg.Scoring.Momentum

	if !rsi.Valid {
		return 0
	}

	switch v := rsi.Float64; {
	case v > cfg.OverboughtRSI:
		return -cfg.OverboughtPenalty
	case v >= cfg.FullBandMin && v <= cfg.FullBandMax:
		return cfg.FullPoints
	case v >= cfg.HalfBandMin:
		return cfg.HalfPoints
	default:
		return 0
	}
}

// scoreVolume pays tiered bonuses for unusual volume, unless the spike
// came with a hard down day (panic selling), which is penalized instead.
func (e *Engine) scoreVolume(ind indicator.Set) int {
	cfg := e.cfg.Scoring.Volume
	ratio := ind.VolumeRatio

	if ratio >= cfg.PanicRatio && ind.DailyReturn.Valid && ind.DailyReturn.Float64 < cfg.PanicReturnPct {
		return -cfg.PanicPenalty
	}

	switch {
	case ratio >= cfg.BigRatio:
		return cfg.BigPoints
	case ratio >= cfg.SpikeRatio:
		return cfg.SpikePoints
	default:
		return 0
	}
}

// scoreFundamentals pays for value multiples under the thresholds.
// Absent fundamentals contribute exactly zero, never a penalty.
func (e *Engine) scoreFundamentals(fund *contracts.Fundamentals) int {
	cfg := e.cfg.Scoring.Fundamentals
	pts := 0

	if fund.HasPBR() && *fund.PriceToBook < cfg.PBRMax {
		pts += cfg.PBRPoints
	}
	if fund.HasPER() && *fund.TrailingPE < cfg.PERMax {
		pts += cfg.PERPoints
	}
	return pts
}

// scoreRiskReward converts the trade plan's R/R ratio into points once it
// clears the minimum worthwhile ratio.
func (e *Engine) scoreRiskReward(rr float64) int {
	cfg := e.cfg.Scoring.RiskReward

	if rr < cfg.MinRR {
		return 0
	}

	pts := rr * cfg.Multiplier
	if pts > cfg.Cap {
		pts = cfg.Cap
	}
	return int(pts)
}
