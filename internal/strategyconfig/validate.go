package strategyconfig

import "fmt"

// Validate checks the config for values that would make scoring
// meaningless or divide by zero.
func Validate(cfg *Config) error {
	if len(cfg.Universe.Codes) == 0 {
		return fmt.Errorf("universe.codes must not be empty")
	}
	if cfg.Universe.TopN <= 0 {
		return fmt.Errorf("universe.top_n must be positive, got %d", cfg.Universe.TopN)
	}

	s := cfg.Scoring

	if s.Trend.Cap <= 0 {
		return fmt.Errorf("scoring.trend.cap must be positive, got %d", s.Trend.Cap)
	}
	if s.Pullback.Cap <= 0 || s.Pullback.Steepness <= 0 {
		return fmt.Errorf("scoring.pullback cap/steepness must be positive")
	}
	if s.Pullback.MinPct >= s.Pullback.MaxPct {
		return fmt.Errorf("scoring.pullback window is empty: min %.1f >= max %.1f",
			s.Pullback.MinPct, s.Pullback.MaxPct)
	}
	if s.Pullback.TargetPct < s.Pullback.MinPct || s.Pullback.TargetPct > s.Pullback.MaxPct {
		return fmt.Errorf("scoring.pullback.target_pct %.2f outside window [%.1f, %.1f]",
			s.Pullback.TargetPct, s.Pullback.MinPct, s.Pullback.MaxPct)
	}
	if s.Momentum.FullBandMin >= s.Momentum.FullBandMax {
		return fmt.Errorf("scoring.momentum RSI band is empty")
	}
	if s.Momentum.HalfBandMin > s.Momentum.FullBandMin {
		return fmt.Errorf("scoring.momentum.half_band_min must not exceed full_band_min")
	}
	if s.Volume.SpikeRatio <= 1.0 || s.Volume.BigRatio <= s.Volume.SpikeRatio {
		return fmt.Errorf("scoring.volume ratios must satisfy 1.0 < spike < big")
	}
	if s.RiskReward.Cap <= 0 || s.RiskReward.Multiplier <= 0 {
		return fmt.Errorf("scoring.risk_reward cap/multiplier must be positive")
	}

	st := cfg.Strategy
	if st.StopATRMult <= 0 {
		return fmt.Errorf("strategy.stop_atr_mult must be positive, got %.2f", st.StopATRMult)
	}
	if st.TargetLookback <= 0 {
		return fmt.Errorf("strategy.target_lookback must be positive, got %d", st.TargetLookback)
	}
	if st.WideTargetATR <= st.MinTargetATRMult {
		return fmt.Errorf("strategy.wide_target_atr must exceed min_target_atr_mult")
	}

	if cfg.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be positive, got %d", cfg.Scan.Workers)
	}

	return nil
}
