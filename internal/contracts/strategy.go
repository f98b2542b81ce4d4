package contracts

// EntryPolicy identifies which row of the entry decision table fired
type EntryPolicy string

// Entry policies, strongest trend first. The deriver evaluates them
// top to bottom and takes the first match.
const (
	PolicyMomentumBuy   EntryPolicy = "momentum_buy"   // 成行で即エントリー
	PolicyTrendFollow   EntryPolicy = "trend_follow"   // MA5への浅い押し目待ち
	PolicyDipBuy        EntryPolicy = "dip_buy"        // MA25への深い押し目待ち
	PolicyRebound       EntryPolicy = "rebound"        // MA75での反発狙い
	PolicyBottomFishing EntryPolicy = "bottom_fishing" // 明確な支持線なし
)

// Label returns the human-readable strategy label used in reports
func (p EntryPolicy) Label() string {
	switch p {
	case PolicyMomentumBuy:
		return "Momentum Buy (成行)"
	case PolicyTrendFollow:
		return "Trend Follow (MA5)"
	case PolicyDipBuy:
		return "Dip Buy (MA25)"
	case PolicyRebound:
		return "Rebound (MA75)"
	case PolicyBottomFishing:
		return "Bottom Fishing"
	default:
		return string(p)
	}
}

// StrategyPlan is the strategy deriver's output for one ticker
type StrategyPlan struct {
	Code         string      `json:"code"`
	CurrentPrice float64     `json:"current_price"`
	EntryPrice   float64     `json:"entry_price"`
	StopLoss     float64     `json:"stop_loss"`
	TargetProfit float64     `json:"target_profit"`
	RiskReward   float64     `json:"risk_reward"`
	Policy       EntryPolicy `json:"policy"`
	Narrative    string      `json:"narrative"`
}
