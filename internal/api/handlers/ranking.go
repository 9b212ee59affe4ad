package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/internal/report"
	"github.com/wonny/goldcross/internal/screener"
	"github.com/wonny/goldcross/internal/strategy"
	"github.com/wonny/goldcross/pkg/logger"
)

// RankingHandler exposes the factor strategies over HTTP.
type RankingHandler struct {
	screener *screener.Screener
	registry *strategy.Registry
	repo     *report.Repository
	logger   *logger.Logger
}

func NewRankingHandler(s *screener.Screener, registry *strategy.Registry, repo *report.Repository, log *logger.Logger) *RankingHandler {
	return &RankingHandler{screener: s, registry: registry, repo: repo, logger: log}
}

// List names every registered strategy with its description.
// GET /api/strategies
func (h *RankingHandler) List(w http.ResponseWriter, _ *http.Request) {
	type info struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var out []info
	for _, name := range h.registry.Names() {
		s, _ := h.registry.Get(name)
		out = append(out, info{Name: name, Description: s.Description()})
	}
	respondJSON(w, http.StatusOK, out)
}

// Run executes one strategy over a fresh fundamental snapshot. The
// request body, if present, carries parameter overrides.
// POST /api/strategies/{name}/run
func (h *RankingHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	var params contracts.Params
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "invalid parameters")
			return
		}
	}

	if _, ok := h.registry.Get(name); !ok {
		respondError(w, http.StatusNotFound, "unknown strategy")
		return
	}

	result, err := h.screener.Pick(ctx, name, params)
	if err != nil {
		h.logger.WithError(err).WithField("strategy", name).Error("Strategy run failed")
		respondError(w, http.StatusInternalServerError, "strategy run failed")
		return
	}

	if h.repo != nil && len(result.Selected) > 0 {
		if err := h.repo.SaveRanking(ctx, result); err != nil {
			h.logger.WithError(err).Warn("Failed to persist ranking")
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// Latest returns the most recent persisted ranking for a strategy.
// GET /api/rankings/{name}?limit=30
func (h *RankingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	name := mux.Vars(r)["name"]
	limit := 30
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	scores, err := h.repo.LatestRanking(r.Context(), name, limit)
	if err != nil {
		h.logger.WithError(err).WithField("strategy", name).Error("Failed to load ranking")
		respondError(w, http.StatusInternalServerError, "failed to load ranking")
		return
	}

	respondJSON(w, http.StatusOK, scores)
}
