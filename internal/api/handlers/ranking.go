// Package handlers implements the HTTP endpoint handlers.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/market"
	"github.com/moriq/kabuscan/internal/ranking"
	"github.com/moriq/kabuscan/internal/strategyconfig"
	"github.com/moriq/kabuscan/pkg/logger"
)

// TrendSource reports the index-level market trend
type TrendSource interface {
	Trend(ctx context.Context, indexCode string) market.MarketTrend
}

// RankingHandler serves the latest completed ranking
// ⭐ SSOT: ランキングAPIハンドラーはこの構造体だけ
type RankingHandler struct {
	store  *ranking.Store
	trends TrendSource
	cfg    *strategyconfig.Config
	logger *logger.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(store *ranking.Store, trends TrendSource, cfg *strategyconfig.Config, log *logger.Logger) *RankingHandler {
	return &RankingHandler{
		store:  store,
		trends: trends,
		cfg:    cfg,
		logger: log,
	}
}

// RankingResponse is the GET /api/ranking payload
type RankingResponse struct {
	UpdatedAt  time.Time               `json:"updated_at"`
	ConfigHash string                  `json:"config_hash"`
	TopN       int                     `json:"top_n"`
	Ranking    []contracts.RankedStock `json:"ranking"`
}

// GetRanking returns the latest ranking
// GET /api/ranking?limit=20
func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ranked, hash, updatedAt, ok := h.store.Latest()
	if !ok {
		respondError(w, http.StatusNotFound, "No ranking yet; trigger a scan first")
		return
	}

	limit := h.cfg.Universe.TopN
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := parsePositiveInt(q); err == nil {
			limit = n
		}
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}

	respondJSON(w, http.StatusOK, RankingResponse{
		UpdatedAt:  updatedAt,
		ConfigHash: hash,
		TopN:       limit,
		Ranking:    ranked[:limit],
	})
}

// GetMarketTrend returns the index trend gauge
// GET /api/market/trend
func (h *RankingHandler) GetMarketTrend(w http.ResponseWriter, r *http.Request) {
	trend := h.trends.Trend(r.Context(), h.cfg.Universe.IndexCode)
	respondJSON(w, http.StatusOK, trend)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("not positive: %d", n)
	}
	return n, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
