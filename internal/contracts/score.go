package contracts

import "time"

// Score categories
// ⭐ SSOT: カテゴリ名の定義はここだけ
const (
	CategoryTrend        = "trend"
	CategoryPullback     = "pullback"
	CategoryMomentum     = "momentum"
	CategoryVolume       = "volume"
	CategoryFundamentals = "fundamentals"
	CategoryRiskReward   = "risk_reward"
)

// ScoreResult is the scoring engine's output for one ticker
type ScoreResult struct {
	Code  string  `json:"code"`
	Price float64 `json:"price"`
	Score int     `json:"score"` // 0-100

	// Per-category integer breakdown, keyed by Category* constants
	Breakdown map[string]int `json:"breakdown"`

	// Short threshold-triggered labels, in trigger order ("激アツ", "出来高急増"...)
	Tags []string `json:"tags"`

	// Multi-line commentary for the detail view
	Narrative string `json:"narrative"`

	// Display metrics carried alongside the score
	MA25       float64 `json:"ma25"`
	Deviation  float64 `json:"deviation"` // % distance from MA25
	RSI        float64 `json:"rsi"`
	PBR        float64 `json:"pbr"`
	PER        float64 `json:"per"`
	RiskReward float64 `json:"risk_reward"`

	ScoredAt time.Time `json:"scored_at"`
}

// Verdict returns the tiered qualitative verdict for the total score
func (r *ScoreResult) Verdict() string {
	switch {
	case r.Score >= 80:
		return "激アツ"
	case r.Score >= 60:
		return "買い推奨"
	case r.Score >= 40:
		return "様子見"
	default:
		return "危険"
	}
}

// FactorSummary joins the tags into the one-line reason column
func (r *ScoreResult) FactorSummary() string {
	if len(r.Tags) == 0 {
		return "特になし"
	}
	out := r.Tags[0]
	for _, t := range r.Tags[1:] {
		out += "、" + t
	}
	return out
}

// RankedStock represents one row of the score ranking
type RankedStock struct {
	Rank     int    `json:"rank"` // 1-based
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	Earnings string `json:"earnings,omitempty"` // next earnings date, "-" when unknown

	Result *ScoreResult `json:"result"`
}

// IsTopRanked checks if the stock is in top N ranks
func (r *RankedStock) IsTopRanked(n int) bool {
	return r.Rank > 0 && r.Rank <= n
}
