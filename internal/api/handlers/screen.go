package handlers

import (
	"net/http"
	"strconv"

	"github.com/wonny/goldcross/internal/report"
	"github.com/wonny/goldcross/internal/screener"
	"github.com/wonny/goldcross/pkg/logger"
)

// ScreenHandler exposes the crossover screen over HTTP.
type ScreenHandler struct {
	screener *screener.Screener
	repo     *report.Repository
	logger   *logger.Logger
}

// NewScreenHandler builds the handler. repo may be nil when no database
// is configured; persistence and the latest endpoint degrade then.
func NewScreenHandler(s *screener.Screener, repo *report.Repository, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{screener: s, repo: repo, logger: log}
}

// Run triggers a screening run and answers with its result.
// POST /api/screen/run
func (h *ScreenHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.screener.Screen(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Screen run failed")
		respondError(w, http.StatusInternalServerError, "screen run failed")
		return
	}

	if h.repo != nil && len(result.Events) > 0 {
		if err := h.repo.SaveEvents(ctx, result.RunAt, result.Events); err != nil {
			// the caller still gets the result this run
			h.logger.WithError(err).Warn("Failed to persist crossover events")
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// Latest returns persisted crossover events, newest first.
// GET /api/screen/latest?limit=50
func (h *ScreenHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	events, err := h.repo.LatestEvents(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load crossover events")
		respondError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	respondJSON(w, http.StatusOK, events)
}
