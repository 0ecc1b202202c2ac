package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	apimw "github.com/scoreline/score-sync/internal/api/middleware"
	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/feed"
	"github.com/scoreline/score-sync/internal/service"
)

// SyncHandler exposes the score sync job as an HTTP function.
type SyncHandler struct {
	svc            *service.ScoreSyncService
	feed           feed.Adapter
	acceptSnapshot bool
	logger         *zap.Logger
}

// NewSyncHandler runs the job against src. When acceptSnapshot is set a
// non-empty request body of the form {"records": [...]} replaces src for
// that run; otherwise the body is ignored.
func NewSyncHandler(svc *service.ScoreSyncService, src feed.Adapter, acceptSnapshot bool, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{svc: svc, feed: src, acceptSnapshot: acceptSnapshot, logger: logger}
}

type syncResponse struct {
	Success              bool          `json:"success"`
	Updated              int           `json:"updated"`
	Total                int           `json:"total"`
	Skipped              int           `json:"skipped"`
	Ambiguous            int           `json:"ambiguous"`
	NotificationsCreated int           `json:"notifications_created"`
	Skips                []domain.Skip `json:"skips,omitempty"`
}

type syncErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Preflight handles OPTIONS /api/v1/jobs/update-scores
//
// @Summary  CORS preflight for the score sync job
// @Tags     jobs
// @Produce  plain
// @Success  200  {string}  string  "ok"
// @Router   /api/v1/jobs/update-scores [options]
func (h *SyncHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Run handles POST /api/v1/jobs/update-scores
//
// @Summary   Pull live scores, update matches and notify fans
// @Tags      jobs
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      domain.Snapshot     false  "Explicit feed snapshot"
// @Success   200   {object}  syncResponse
// @Failure   409   {object}  syncErrorResponse
// @Failure   422   {object}  map[string]string
// @Failure   500   {object}  syncErrorResponse
// @Failure   504   {object}  syncErrorResponse
// @Router    /api/v1/jobs/update-scores [post]
func (h *SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	correlationID := apimw.GetCorrelationID(r.Context())

	src, err := h.source(r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSnapshot) {
			mapError(w, err)
			return
		}
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Runs are bounded by the sync budget, not the client connection.
	ctx := context.WithoutCancel(r.Context())

	report, err := h.svc.Run(ctx, src)
	if err != nil {
		h.logger.Warn("score sync rejected", zap.String("correlation_id", correlationID), zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrSyncInProgress) {
			status = http.StatusConflict
		}
		respondJSON(w, status, syncErrorResponse{Error: err.Error()})
		return
	}

	if !report.Success {
		status := http.StatusInternalServerError
		if report.Failure == domain.FailureTimeout {
			status = http.StatusGatewayTimeout
		}
		h.logger.Error("score sync failed",
			zap.String("correlation_id", correlationID),
			zap.String("failure", string(report.Failure)),
			zap.String("error", report.Error),
		)
		respondJSON(w, status, syncErrorResponse{Error: report.Error})
		return
	}

	respondJSON(w, http.StatusOK, syncResponse{
		Success:              true,
		Updated:              report.Updated,
		Total:                report.Total,
		Skipped:              report.Skipped,
		Ambiguous:            report.Ambiguous,
		NotificationsCreated: report.NotificationsCreated,
		Skips:                report.Skips,
	})
}

// source picks the adapter for this request.
func (h *SyncHandler) source(r *http.Request) (feed.Adapter, error) {
	if !h.acceptSnapshot || r.Body == nil {
		return h.feed, nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return h.feed, nil
	}

	var snap domain.Snapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return feed.NewStaticAdapter(snap.Records), nil
}
