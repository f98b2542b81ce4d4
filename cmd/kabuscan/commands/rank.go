package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moriq/kabuscan/internal/contracts"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "ユニバースを採点してランキング表を出力",
	Long: `設定されたユニバース全銘柄を採点し、スコア降順のランキング表を
Markdown形式で出力します。

Example:
  go run ./cmd/kabuscan rank
  go run ./cmd/kabuscan rank --top 10`,
	RunE: runRank,
}

var rankTop int

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "表示する件数 (0=設定値)")
}

func runRank(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	ctx := context.Background()

	trend := app.provider.Trend(ctx, app.strategy.Universe.IndexCode)
	fmt.Printf("日経平均: %s (%.0f円 / 前日比 %+.0f)\n\n", trend.Status, trend.Price, trend.Change)

	fmt.Println("Collecting data and analyzing scores for Nikkei 225 candidates...")
	ranked, started, err := app.service.Rescan(ctx, func(done, total int) {
		fmt.Printf("Progress: %d/%d\r", done, total)
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if !started {
		return fmt.Errorf("a scan is already running")
	}
	fmt.Println("\nDone.")

	top := app.strategy.Universe.TopN
	if rankTop > 0 {
		top = rankTop
	}
	if top > len(ranked) {
		top = len(ranked)
	}

	printRankingTable(ranked[:top])
	return nil
}

// printRankingTable renders the Markdown ranking table
func printRankingTable(rows []contracts.RankedStock) {
	fmt.Printf("\n### Nikkei 225 Strategy Score Ranking (Top %d)\n", len(rows))
	fmt.Println("| Rank | Code | Name | Score | Price | Dist. MA25 (%) | Earnings | R/R | Factors |")
	fmt.Println("| :--- | :--- | :--- | :--- | :--- | :--- | :--- | :--- | :--- |")

	for _, row := range rows {
		r := row.Result
		earnings := row.Earnings
		if earnings == "" {
			earnings = "-"
		}
		fmt.Printf("| %d | %s | %s | **%d** | %.0f | %.1f%% | %s | %.2f | %s |\n",
			row.Rank, row.Code, row.Name, r.Score, r.Price, r.Deviation, earnings, r.RiskReward, r.FactorSummary())
	}
}
