package strategyconfig

// Config は銘柄スコアリング戦略の全設定
// スコアの重み・しきい値は全てここで持ち、コードにマジックナンバーを埋めない
type Config struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Universe   Universe   `yaml:"universe" json:"universe"`
	Scoring    Scoring    `yaml:"scoring" json:"scoring"`
	Strategy   Strategy   `yaml:"strategy" json:"strategy"`
	Scan       Scan       `yaml:"scan" json:"scan"`
}

// Meta holds strategy identity
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
	Timezone   string `yaml:"timezone" json:"timezone"`
}

// Universe is the explicit ticker pool. Replaces the mutable global list:
// the orchestrator only scans what this says.
type Universe struct {
	Codes      []string `yaml:"codes" json:"codes"`
	IndexCode  string   `yaml:"index_code" json:"index_code"` // market trend gauge
	TopN       int      `yaml:"top_n" json:"top_n"`
	LookbackMo int      `yaml:"lookback_months" json:"lookback_months"`
}

// Scoring holds the per-category weights and thresholds
type Scoring struct {
	Trend        Trend        `yaml:"trend" json:"trend"`
	Pullback     Pullback     `yaml:"pullback" json:"pullback"`
	Momentum     Momentum     `yaml:"momentum" json:"momentum"`
	Volume       Volume       `yaml:"volume" json:"volume"`
	Fundamentals Fundamentals `yaml:"fundamentals" json:"fundamentals"`
	RiskReward   RiskReward   `yaml:"risk_reward" json:"risk_reward"`
}

// Trend: cap 30
type Trend struct {
	Cap         int     `yaml:"cap" json:"cap"`
	BasePoints  int     `yaml:"base_points" json:"base_points"`   // price > MA25
	OrderPoints int     `yaml:"order_points" json:"order_points"` // MA25 > MA75
	ShortPoints int     `yaml:"short_points" json:"short_points"` // MA5 > MA25
	SlopeCap    float64 `yaml:"slope_cap" json:"slope_cap"`       // max slope bonus
	SlopeMult   float64 `yaml:"slope_mult" json:"slope_mult"`     // points per slope%
}

// Pullback: bell curve around an ideal deviation from MA25, only in uptrends
type Pullback struct {
	Cap       float64 `yaml:"cap" json:"cap"`
	TargetPct float64 `yaml:"target_pct" json:"target_pct"` // ideal deviation center
	Steepness float64 `yaml:"steepness" json:"steepness"`   // points lost per % off center
	MinPct    float64 `yaml:"min_pct" json:"min_pct"`       // window lower bound
	MaxPct    float64 `yaml:"max_pct" json:"max_pct"`       // window upper bound
}

// Momentum: RSI swing-continuation band
type Momentum struct {
	FullBandMin       float64 `yaml:"full_band_min" json:"full_band_min"`
	FullBandMax       float64 `yaml:"full_band_max" json:"full_band_max"`
	HalfBandMin       float64 `yaml:"half_band_min" json:"half_band_min"`
	FullPoints        int     `yaml:"full_points" json:"full_points"`
	HalfPoints        int     `yaml:"half_points" json:"half_points"`
	OverboughtRSI     float64 `yaml:"overbought_rsi" json:"overbought_rsi"`
	OverboughtPenalty int     `yaml:"overbought_penalty" json:"overbought_penalty"`
}

// Volume: tiered bonus + panic-selling penalty
type Volume struct {
	SpikeRatio     float64 `yaml:"spike_ratio" json:"spike_ratio"` // 1.3x tier
	BigRatio       float64 `yaml:"big_ratio" json:"big_ratio"`     // 2.0x tier
	SpikePoints    int     `yaml:"spike_points" json:"spike_points"`
	BigPoints      int     `yaml:"big_points" json:"big_points"`
	PanicRatio     float64 `yaml:"panic_ratio" json:"panic_ratio"`           // volume spike floor
	PanicReturnPct float64 `yaml:"panic_return_pct" json:"panic_return_pct"` // daily return ceiling
	PanicPenalty   int     `yaml:"panic_penalty" json:"panic_penalty"`
}

// Fundamentals: value thresholds; absence contributes zero
type Fundamentals struct {
	PBRMax    float64 `yaml:"pbr_max" json:"pbr_max"`
	PERMax    float64 `yaml:"per_max" json:"per_max"`
	PBRPoints int     `yaml:"pbr_points" json:"pbr_points"`
	PERPoints int     `yaml:"per_points" json:"per_points"`
}

// RiskReward: bonus derived from the strategy deriver's R/R ratio
type RiskReward struct {
	Cap        float64 `yaml:"cap" json:"cap"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	MinRR      float64 `yaml:"min_rr" json:"min_rr"`
	GoodRR     float64 `yaml:"good_rr" json:"good_rr"` // tag threshold
}

// Strategy holds the trade-plan derivation parameters
type Strategy struct {
	StopATRMult      float64 `yaml:"stop_atr_mult" json:"stop_atr_mult"`             // stop = entry - N*ATR
	TargetLookback   int     `yaml:"target_lookback" json:"target_lookback"`         // recent-high window
	MinTargetATRMult float64 `yaml:"min_target_atr_mult" json:"min_target_atr_mult"` // too-tight threshold
	WideTargetATR    float64 `yaml:"wide_target_atr" json:"wide_target_atr"`         // replacement target
	MomentumRSI      float64 `yaml:"momentum_rsi" json:"momentum_rsi"`               // row 1 RSI floor
	TrendFollowRSI   float64 `yaml:"trend_follow_rsi" json:"trend_follow_rsi"`       // row 2 RSI floor
}

// Scan holds orchestration parameters
type Scan struct {
	Workers int `yaml:"workers" json:"workers"`
}

// Default returns the built-in strategy configuration, so the engine runs
// without a YAML file. STRATEGY_CONFIG_PATH overrides it.
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "nikkei_swing",
			Version:    "1.0",
			Timezone:   "Asia/Tokyo",
		},
		Universe: Universe{
			Codes:      defaultUniverse,
			IndexCode:  "^N225",
			TopN:       20,
			LookbackMo: 6,
		},
		Scoring: Scoring{
			Trend: Trend{
				Cap:         30,
				BasePoints:  10,
				OrderPoints: 10,
				ShortPoints: 5,
				SlopeCap:    15,
				SlopeMult:   10,
			},
			Pullback: Pullback{
				Cap:       30,
				TargetPct: 0.75,
				Steepness: 8,
				MinPct:    -3.0,
				MaxPct:    5.0,
			},
			Momentum: Momentum{
				FullBandMin:       50,
				FullBandMax:       75,
				HalfBandMin:       40,
				FullPoints:        20,
				HalfPoints:        10,
				OverboughtRSI:     75,
				OverboughtPenalty: 5,
			},
			Volume: Volume{
				SpikeRatio:     1.3,
				BigRatio:       2.0,
				SpikePoints:    5,
				BigPoints:      10,
				PanicRatio:     1.5,
				PanicReturnPct: -3.0,
				PanicPenalty:   5,
			},
			Fundamentals: Fundamentals{
				PBRMax:    1.3,
				PERMax:    18,
				PBRPoints: 5,
				PERPoints: 5,
			},
			RiskReward: RiskReward{
				Cap:        15,
				Multiplier: 5,
				MinRR:      1.0,
				GoodRR:     2.5,
			},
		},
		Strategy: Strategy{
			StopATRMult:      2.0,
			TargetLookback:   60,
			MinTargetATRMult: 1.5,
			WideTargetATR:    4.0,
			MomentumRSI:      60,
			TrendFollowRSI:   45,
		},
		Scan: Scan{
			Workers: 4,
		},
	}
}

// defaultUniverse is a Nikkei 225 core subset (大型株中心)
var defaultUniverse = []string{
	"1925", "2502", "2914", "3382", "4063", "4502", "4503", "4568", "4661",
	"4901", "5101", "5401", "6098", "6301", "6367", "6501", "6594", "6758",
	"6770", "6861", "6902", "6954", "6981", "7203", "7267", "7741", "7974",
	"8001", "8031", "8035", "8058", "8306", "8316", "8411", "8630", "8766",
	"8801", "9020", "9432", "9433", "9983", "9984",
}
