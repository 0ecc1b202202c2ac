package handler

import (
	"net/http"

	"github.com/scoreline/score-sync/internal/service"
)

// MetricsHandler serves a human-readable JSON snapshot of the last sync run.
// Raw Prometheus metrics (counters, histograms) are available at /metrics
// via promhttp.Handler and are separate from this endpoint.
type MetricsHandler struct {
	sync *service.ScoreSyncService
}

func NewMetricsHandler(sync *service.ScoreSyncService) *MetricsHandler {
	return &MetricsHandler{sync: sync}
}

// LastSync handles GET /api/v1/sync/last
//
// @Summary  Report of the most recent score sync run
// @Tags     metrics
// @Produce  json
// @Success  200  {object}  domain.SyncReport
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/sync/last [get]
func (h *MetricsHandler) LastSync(w http.ResponseWriter, r *http.Request) {
	report := h.sync.LastReport()
	if report == nil {
		respondError(w, http.StatusNotFound, "no score sync has run yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"mode":   h.sync.Mode(),
		"report": report,
	})
}
