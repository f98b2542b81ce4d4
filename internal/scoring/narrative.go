package scoring

import (
	"fmt"
	"strings"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/indicator"
)

// narrative composes the long commentary from fixed template sentences
// parameterized by the computed values.
func (e *Engine) narrative(r *contracts.ScoreResult, ind indicator.Set, series contracts.PriceSeries) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("【総合評価】 スコア: %d点", r.Score))
	lines = append(lines, priceLine(r.Price, series))

	lines = append(lines, fmt.Sprintf("トレンド: %sトレンド / 一目均衡表: %s",
		trendWord(r.Price, ind), cloudWord(r.Price, ind)))

	if ind.MACD.Valid && ind.MACDSignal.Valid {
		cross := "デッドクロス中"
		if ind.MACD.Float64 > ind.MACDSignal.Float64 {
			cross = "ゴールデンクロス中"
		}
		lines = append(lines, fmt.Sprintf("MACD: %s (MACD:%.1f / Signal:%.1f)",
			cross, ind.MACD.Float64, ind.MACDSignal.Float64))
	}

	lines = append(lines, fmt.Sprintf("ボリンジャーバンド: %s", bollingerWord(ind.BBPosition)))
	lines = append(lines, rsiLine(ind.RSI14))
	lines = append(lines, volumeLine(ind.VolumeRatio))
	lines = append(lines, fmt.Sprintf("PBR: %.2f倍 / PER: %.1f倍", r.PBR, r.PER))

	lines = append(lines, "")
	lines = append(lines, "【売買判断】")
	lines = append(lines, verdictBlock(r.Score)...)

	lines = append(lines, "")
	if ind.HV20.Valid {
		lines = append(lines, fmt.Sprintf("HV(ボラティリティ): %.1f%%", ind.HV20.Float64))
	}
	lines = append(lines, "※投資判断は自己責任で行ってください。")

	return strings.Join(lines, "\n")
}

func priceLine(price float64, series contracts.PriceSeries) string {
	if series.Len() >= 2 {
		prev := series[series.Len()-2].Close
		return fmt.Sprintf("現在値: %.0f円 (前日比 %+.0f円)", price, price-prev)
	}
	return fmt.Sprintf("現在値: %.0f円", price)
}

func trendWord(price float64, ind indicator.Set) string {
	if ind.MA25.Valid && price > ind.MA25.Float64 {
		return "上昇"
	}
	return "下落"
}

func cloudWord(price float64, ind indicator.Set) string {
	top, bottom := ind.KumoTop(), ind.KumoBottom()
	switch {
	case !top.Valid || !bottom.Valid:
		return "算出不可"
	case price > top.Float64:
		return "雲上"
	case price < bottom.Float64:
		return "雲下"
	default:
		return "雲中"
	}
}

func bollingerWord(pos indicator.Value) string {
	switch {
	case !pos.Valid:
		return "算出不可"
	case pos.Float64 > 1.0:
		return "+2σ突破 (過熱感あり)"
	case pos.Float64 < 0.0:
		return "-2σ割れ (売られすぎ)"
	default:
		return "バンド内に収束"
	}
}

func rsiLine(rsi indicator.Value) string {
	if !rsi.Valid {
		return "RSI(14): 算出不可"
	}

	zone := "中立"
	switch {
	case rsi.Float64 > 70:
		zone = "過熱圏"
	case rsi.Float64 < 30:
		zone = "売られすぎ"
	}
	return fmt.Sprintf("RSI(14): %.1f (%s)", rsi.Float64, zone)
}

func volumeLine(ratio float64) string {
	state := "通常"
	if ratio > 1.5 {
		state = "急増"
	}
	return fmt.Sprintf("出来高: 通常比 %.1f倍 (%s)", ratio, state)
}

// verdictBlock bands the total score into the tiered qualitative verdict
func verdictBlock(score int) []string {
	switch {
	case score >= 80:
		return []string{
			"評価: ★★★★★ (激アツ)",
			"テクニカル・ファンダメンタルズ共に死角なし。",
			"積極的なエントリーを推奨します。",
		}
	case score >= 60:
		return []string{
			"評価: ★★★★☆ (買い推奨)",
			"上昇トレンドを維持しており、押し目買いの好機。",
			"MACDや一目均衡表も好転しています。",
		}
	case score >= 40:
		return []string{
			"評価: ★★★☆☆ (様子見)",
			"悪くはありませんが、決定打に欠けます。",
			"トレンドが明確になるまで待機を推奨。",
		}
	default:
		return []string{
			"評価: ★★☆☆☆ (危険)",
			"下落トレンド、または過熱感が強すぎます。",
			"今は手出し無用です。",
		}
	}
}
