package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moriq/kabuscan/internal/api"
	"github.com/moriq/kabuscan/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "APIサーバー起動",
	Long: `REST APIサーバーを起動します。

Endpoints:
  GET  /health               - Health check
  GET  /api/ranking          - 最新ランキング
  GET  /api/market/trend     - 日経平均トレンド
  GET  /api/analysis/{code}  - 個別銘柄分析
  POST /api/scan             - リスキャン実行
  WS   /ws/scan              - 進捗付きリスキャン

Example:
  go run ./cmd/kabuscan api
  go run ./cmd/kabuscan api --port 8091`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "APIサーバーポート (default: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	rankingHandler := handlers.NewRankingHandler(app.service.Store(), app.provider, app.strategy, app.logger)
	analysisHandler := handlers.NewAnalysisHandler(app.provider, app.provider, app.engine, app.logger)
	scanHandler := handlers.NewScanHandler(app.service, app.logger)

	router := api.NewRouter(rankingHandler, analysisHandler, scanHandler, app.logger)
	server := api.New(app.cfg, app.logger, router)

	go func() {
		if err := server.Start(); err != nil {
			app.logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", app.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
