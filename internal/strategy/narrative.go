package strategy

import (
	"fmt"
	"strings"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/indicator"
)

// narrative composes the detail report: fundamentals, trend
// classification, the selected entry rationale and the risk numbers.
func (d *Deriver) narrative(plan *contracts.StrategyPlan, ind indicator.Set, fund *contracts.Fundamentals) string {
	var lines []string

	if para := fundamentalsParagraph(fund); para != "" {
		lines = append(lines, para)
	}

	lines = append(lines, "【トレンド分析】")
	lines = append(lines, trendParagraph(plan.CurrentPrice, ind))

	lines = append(lines, "")
	lines = append(lines, "【戦略ポイント】")
	lines = append(lines, entryParagraph(plan, ind))

	lines = append(lines, "")
	lines = append(lines, "【リスク管理】")
	lines = append(lines, fmt.Sprintf("目標株価は直近高値の %s円 に設定します。", yen(plan.TargetProfit)))
	lines = append(lines, fmt.Sprintf("万が一読みが外れた場合は、%s円 で確実に損切りを行ってください。", yen(plan.StopLoss)))
	lines = append(lines, fmt.Sprintf("このトレードのリスクリワード比は %.2f です。（1.0以上で有利、2.0以上で推奨）", plan.RiskReward))

	return strings.Join(lines, "\n")
}

// fundamentalsParagraph is empty when no fundamentals are available
func fundamentalsParagraph(fund *contracts.Fundamentals) string {
	if !fund.HasPBR() && !fund.HasPER() {
		return ""
	}

	var parts []string
	if fund.HasPER() {
		parts = append(parts, fmt.Sprintf("PER: %.1f倍", *fund.TrailingPE))
	}
	if fund.HasPBR() {
		parts = append(parts, fmt.Sprintf("PBR: %.2f倍", *fund.PriceToBook))
	}

	para := "【ファンダメンタルズ】\n" + strings.Join(parts, " / ")

	if fund.HasPER() {
		switch per := *fund.TrailingPE; {
		case per < 15:
			para += "\nPERが15倍を下回っており、割安感があります。"
		case per > 30:
			para += "\nPERが高いため、成長期待が高い反面、割高感もあります。"
		}
	}

	return para + "\n"
}

func trendParagraph(price float64, ind indicator.Set) string {
	switch {
	case above(price, ind.MA25) && ind.MA25.GreaterThan(ind.MA75):
		return "現在、株価は長期・中期移動平均線の上にあり、理想的な上昇トレンド（パーフェクトオーダー）を形成しています。"
	case below(price, ind.MA25) && ind.MA75.GreaterThan(ind.MA25):
		return "現在、株価は移動平均線を下回っており、下落トレンドの中にあります。逆張りには注意が必要です。"
	default:
		return "現在はトレンドが明確ではない、あるいはトレンド転換の過渡期にあります。"
	}
}

func entryParagraph(plan *contracts.StrategyPlan, ind indicator.Set) string {
	switch plan.Policy {
	case contracts.PolicyMomentumBuy:
		return "上昇の勢いが非常に強いため、押し目を待たずに成行でのエントリーを推奨します。"
	case contracts.PolicyTrendFollow:
		return fmt.Sprintf("上昇モメンタムが強いため、5日移動平均線（%s円）付近での浅い押し目を拾う「トレンドフォロー」を推奨します。置いていかれないよう積極的に狙う局面です。",
			yen(ind.MA5.Or(plan.EntryPrice)))
	case contracts.PolicyDipBuy:
		return fmt.Sprintf("過熱感がないため、25日移動平均線（%s円）付近まで調整するのをじっくり待ちます。",
			yen(ind.MA25.Or(plan.EntryPrice)))
	case contracts.PolicyRebound:
		return fmt.Sprintf("25日線を割り込みましたが、75日移動平均線（%s円）がサポートとして機能する可能性があります。",
			yen(ind.MA75.Or(plan.EntryPrice)))
	default:
		return "明確なサポートラインが見当たらないため、直近安値を目処にします。"
	}
}

// below reports price < ma, false when the MA is undefined
func below(price float64, ma indicator.Value) bool {
	return ma.Valid && price < ma.Float64
}

// yen formats a price with thousands separators, no decimals
func yen(v float64) string {
	n := int64(v)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
