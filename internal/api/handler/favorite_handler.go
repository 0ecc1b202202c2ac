package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apimw "github.com/scoreline/score-sync/internal/api/middleware"
	"github.com/scoreline/score-sync/internal/auth"
	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/service"
)

// FavoriteHandler manages the caller's starred teams.
type FavoriteHandler struct {
	svc       *service.FavoriteService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewFavoriteHandler(svc *service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{svc: svc, validator: validator.New(), logger: logger}
}

type favoriteListResponse struct {
	Data []*domain.Favorite `json:"data"`
}

// List handles GET /api/v1/me/favorites
//
// @Summary   List the caller's favorite teams
// @Tags      favorites
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  favoriteListResponse
// @Failure   401  {object}  map[string]string
// @Router    /api/v1/me/favorites [get]
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		mapError(w, domain.ErrUnauthorized)
		return
	}
	favorites, err := h.svc.List(r.Context(), userID)
	if err != nil {
		mapError(w, err)
		return
	}
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	respondJSON(w, http.StatusOK, favoriteListResponse{Data: favorites})
}

// Add handles POST /api/v1/me/favorites
//
// @Summary   Star a team
// @Tags      favorites
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      domain.AddFavoriteRequest  true  "Team to star"
// @Success   201   {object}  domain.Favorite
// @Failure   400   {object}  map[string]string
// @Failure   422   {object}  map[string]string
// @Router    /api/v1/me/favorites [post]
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		mapError(w, domain.ErrUnauthorized)
		return
	}

	var req domain.AddFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validator.StructCtx(r.Context(), req); err != nil {
		mapError(w, domain.ErrInvalidTeamName)
		return
	}

	f, err := h.svc.Add(r.Context(), userID, req)
	if err != nil {
		h.logger.Warn("add favorite failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, f)
}

// Remove handles DELETE /api/v1/me/favorites/{id}
//
// @Summary   Unstar a team
// @Tags      favorites
// @Security  BearerAuth
// @Param     id   path  string  true  "Favorite UUID"
// @Success   204
// @Failure   404  {object}  map[string]string
// @Router    /api/v1/me/favorites/{id} [delete]
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		mapError(w, domain.ErrUnauthorized)
		return
	}
	if err := h.svc.Remove(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
