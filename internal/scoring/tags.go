package scoring

import (
	"fmt"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/indicator"
)

// buildTags emits the one-line selection reasons, in a fixed trigger
// order so identical inputs always produce the same list.
func (e *Engine) buildTags(r *contracts.ScoreResult, ind indicator.Set) []string {
	var tags []string

	switch {
	case r.Score >= 80:
		tags = append(tags, "激アツ")
	case r.Score >= 60:
		tags = append(tags, "買い推奨")
	}

	if ind.VolumeRatio > e.cfg.Scoring.Volume.PanicRatio {
		if ind.DailyReturn.Valid && ind.DailyReturn.Float64 < e.cfg.Scoring.Volume.PanicReturnPct {
			tags = append(tags, "パニック売り")
		} else {
			tags = append(tags, "出来高急増")
		}
	}

	if ind.RSI14.Valid && ind.RSI14.Float64 < 30 {
		tags = append(tags, "RSI底打ち")
	}

	if r.PBR > 0 && r.PBR < 1.0 {
		tags = append(tags, "割安")
	}

	if r.RiskReward > e.cfg.Scoring.RiskReward.GoodRR {
		tags = append(tags, fmt.Sprintf("R/R良(%.1f)", r.RiskReward))
	}

	return tags
}
