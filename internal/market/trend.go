package market

import (
	"context"

	"github.com/moriq/kabuscan/internal/indicator"
)

// trendLookbackMonths: 3ヶ月あればMA25が埋まる
const trendLookbackMonths = 3

// MarketTrend is the index-level trend gauge shown above the ranking
type MarketTrend struct {
	Status string  `json:"status"` // "上昇トレンド (強)" など
	Color  string  `json:"color"`  // red=上昇/green=下落 (日本式)
	Price  float64 `json:"price"`
	Change float64 `json:"change"` // 前日比
}

// Trend classifies the overall market from the index chart: the index
// price against MA25 picks the direction, MA5 against MA25 its phase.
func (p *Provider) Trend(ctx context.Context, indexCode string) MarketTrend {
	series, err := p.client.FetchHistory(ctx, indexCode, trendLookbackMonths)
	if err != nil {
		p.logger.WithError(err).WithField("index", indexCode).Warn("Market trend fetch failed")
		return MarketTrend{Status: "取得失敗", Color: "gray"}
	}

	closes := series.Closes()
	price, ok := series.LastClose()
	if !ok {
		return MarketTrend{Status: "取得失敗", Color: "gray"}
	}

	change := 0.0
	if len(closes) >= 2 {
		change = price - closes[len(closes)-2]
	}

	trend := MarketTrend{Price: price, Change: change}
	trend.Status, trend.Color = classifyTrend(closes, price)
	return trend
}

func classifyTrend(closes []float64, price float64) (status, color string) {
	ma5 := indicator.SMA(closes, indicator.MAShortWindow)
	ma25 := indicator.SMA(closes, indicator.MAMidWindow)
	if !ma25.Valid {
		return "トレンド不明", "gray"
	}

	switch {
	case price > ma25.Float64 && ma5.GreaterThan(ma25):
		return "上昇トレンド (強)", "red" // 日本式: 赤=上昇
	case price > ma25.Float64:
		return "上昇トレンド (調整局面)", "orange"
	case price < ma25.Float64 && ma25.GreaterThan(ma5):
		return "下落トレンド (弱)", "green"
	case price < ma25.Float64:
		return "下落トレンド (反発局面)", "blue"
	default:
		return "トレンド不明", "gray"
	}
}
