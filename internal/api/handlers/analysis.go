package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/ranking"
	"github.com/moriq/kabuscan/internal/scoring"
	"github.com/moriq/kabuscan/pkg/logger"
)

// AnalysisHandler serves the per-ticker deep dive: score breakdown,
// trade plan and both narratives.
// ⭐ SSOT: 個別銘柄分析APIはこの構造体だけ
type AnalysisHandler struct {
	provider ranking.PriceProvider
	names    ranking.NameResolver
	engine   *scoring.Engine
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(provider ranking.PriceProvider, names ranking.NameResolver, engine *scoring.Engine, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		provider: provider,
		names:    names,
		engine:   engine,
		logger:   log,
	}
}

// AnalysisResponse is the GET /api/analysis/{code} payload
type AnalysisResponse struct {
	Code   string                  `json:"code"`
	Name   string                  `json:"name"`
	Result *contracts.ScoreResult  `json:"result"`
	Plan   *contracts.StrategyPlan `json:"plan"`
}

// GetAnalysis scores one ticker on demand
// GET /api/analysis/{code}
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := mux.Vars(r)["code"]

	series, err := h.provider.History(ctx, code)
	if err != nil {
		h.logger.WithError(err).WithField("code", code).Warn("Analysis fetch failed")
		respondError(w, http.StatusNotFound, "No price data for "+code)
		return
	}

	fund, err := h.provider.Fundamentals(ctx, code)
	if err != nil {
		fund = nil
	}

	result, err := h.engine.Score(code, series, fund)
	if err != nil {
		if errors.Is(err, contracts.ErrEmptySeries) || errors.Is(err, contracts.ErrInsufficientData) {
			respondError(w, http.StatusNotFound, "Not enough history for "+code)
			return
		}
		h.logger.WithError(err).WithField("code", code).Error("Scoring failed")
		respondError(w, http.StatusInternalServerError, "Scoring failed")
		return
	}

	plan, err := h.engine.Plan(code, series, fund)
	if err != nil {
		h.logger.WithError(err).WithField("code", code).Error("Plan derivation failed")
		respondError(w, http.StatusInternalServerError, "Plan derivation failed")
		return
	}

	respondJSON(w, http.StatusOK, AnalysisResponse{
		Code:   code,
		Name:   h.names.Name(ctx, code),
		Result: result,
		Plan:   plan,
	})
}
