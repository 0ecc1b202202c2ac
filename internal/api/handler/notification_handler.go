package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/scoreline/score-sync/internal/api/middleware"
	"github.com/scoreline/score-sync/internal/auth"
	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/service"
)

// NotificationHandler serves the caller's notification inbox.
type NotificationHandler struct {
	svc    *service.NotificationService
	logger *zap.Logger
}

func NewNotificationHandler(svc *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, logger: logger}
}

type notificationListResponse struct {
	Data   []*domain.Notification `json:"data"`
	Unread int                    `json:"unread"`
}

// List handles GET /api/v1/me/notifications
//
// @Summary   List the caller's notifications, newest first
// @Tags      notifications
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  notificationListResponse
// @Failure   401  {object}  map[string]string
// @Router    /api/v1/me/notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		mapError(w, domain.ErrUnauthorized)
		return
	}
	items, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.logger.Warn("list notifications failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}

	if items == nil {
		items = []*domain.Notification{}
	}
	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	respondJSON(w, http.StatusOK, notificationListResponse{Data: items, Unread: unread})
}

// MarkRead handles POST /api/v1/me/notifications/{id}/read
//
// @Summary   Mark a notification as read
// @Tags      notifications
// @Security  BearerAuth
// @Param     id   path  string  true  "Notification UUID"
// @Success   204
// @Failure   404  {object}  map[string]string
// @Router    /api/v1/me/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		mapError(w, domain.ErrUnauthorized)
		return
	}
	if err := h.svc.MarkRead(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
