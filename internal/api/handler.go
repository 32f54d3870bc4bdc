package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RobRipley/curveLP/internal/domain"
	"github.com/RobRipley/curveLP/internal/observability"
)

// PoolInfoService produces a summary for one pool.
type PoolInfoService interface {
	GetPoolInfo(ctx context.Context, poolID string) (domain.PoolSummary, error)
}

// Handler provides HTTP endpoints for the pool analytics API.
type Handler struct {
	pools   PoolInfoService
	metrics *observability.Metrics
}

// NewHandler creates a new API handler.
func NewHandler(pools PoolInfoService, metrics *observability.Metrics) *Handler {
	return &Handler{pools: pools, metrics: metrics}
}

// GetPoolInfo handles GET /api/get-pool-info?address=<pool>.
func (h *Handler) GetPoolInfo(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("address")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Missing address parameter")
		return
	}
	poolID, err := domain.NormalizePoolAddress(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid address parameter")
		return
	}

	summary, err := h.pools.GetPoolInfo(r.Context(), poolID)
	if err != nil {
		if errors.Is(err, domain.ErrPoolNotFound) {
			h.metrics.RecordLookup(observability.OutcomeNotFound)
			writeError(w, http.StatusNotFound, "Pool not found")
			return
		}
		h.metrics.RecordLookup(observability.OutcomeUpstream)
		slog.Error("failed to get pool info", "pool", poolID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Error fetching data from The Graph",
			"details": err.Error(),
		})
		return
	}

	h.metrics.RecordLookup(observability.OutcomeOK)
	h.metrics.RecordProviders(len(summary.TopProviders))
	writeJSON(w, http.StatusOK, summary)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
