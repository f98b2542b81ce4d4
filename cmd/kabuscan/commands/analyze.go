package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moriq/kabuscan/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [code]",
	Short: "個別銘柄の詳細分析レポート",
	Long: `1銘柄を採点し、スコア内訳・売買プラン・解説レポートを出力します。

Example:
  go run ./cmd/kabuscan analyze 7203`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	ctx := context.Background()
	code := args[0]

	series, err := app.provider.History(ctx, code)
	if err != nil {
		return fmt.Errorf("fetch history for %s: %w", code, err)
	}

	fund, err := app.provider.Fundamentals(ctx, code)
	if err != nil {
		fund = nil
	}

	result, err := app.engine.Score(code, series, fund)
	if err != nil {
		return fmt.Errorf("score %s: %w", code, err)
	}

	plan, err := app.engine.Plan(code, series, fund)
	if err != nil {
		return fmt.Errorf("derive plan for %s: %w", code, err)
	}

	name := app.provider.Name(ctx, code)

	fmt.Printf("=== %s (%s) ===\n\n", name, code)
	fmt.Println(result.Narrative)

	fmt.Println("\n--- スコア内訳 ---")
	categories := []string{
		contracts.CategoryTrend,
		contracts.CategoryPullback,
		contracts.CategoryMomentum,
		contracts.CategoryVolume,
		contracts.CategoryFundamentals,
		contracts.CategoryRiskReward,
	}
	for _, category := range categories {
		fmt.Printf("  %-13s %d\n", category, result.Breakdown[category])
	}

	fmt.Println("\n--- 売買プラン ---")
	fmt.Printf("戦略:     %s\n", plan.Policy.Label())
	fmt.Printf("エントリー: %.0f円\n", plan.EntryPrice)
	fmt.Printf("損切り:    %.0f円\n", plan.StopLoss)
	fmt.Printf("利確目標:  %.0f円\n", plan.TargetProfit)
	fmt.Printf("R/R:      %.2f\n\n", plan.RiskReward)
	fmt.Println(plan.Narrative)

	return nil
}
