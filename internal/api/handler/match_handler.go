package handler

import (
	"net/http"

	"go.uber.org/zap"

	apimw "github.com/scoreline/score-sync/internal/api/middleware"
	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/service"
)

// MatchHandler serves the public match listings.
type MatchHandler struct {
	svc    *service.MatchService
	logger *zap.Logger
}

func NewMatchHandler(svc *service.MatchService, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{svc: svc, logger: logger}
}

type matchListResponse struct {
	Data []*domain.Match `json:"data"`
}

// List handles GET /api/v1/matches
//
// @Summary  List matches
// @Tags     matches
// @Produce  json
// @Param    league  query     string  false  "Filter by league"
// @Success  200     {object}  matchListResponse
// @Router   /api/v1/matches [get]
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.svc.List(r.Context(), r.URL.Query().Get("league"))
	h.respond(w, r, matches, err)
}

// Live handles GET /api/v1/matches/live
//
// @Summary  List live matches
// @Tags     matches
// @Produce  json
// @Success  200  {object}  matchListResponse
// @Router   /api/v1/matches/live [get]
func (h *MatchHandler) Live(w http.ResponseWriter, r *http.Request) {
	matches, err := h.svc.Live(r.Context())
	h.respond(w, r, matches, err)
}

// Upcoming handles GET /api/v1/matches/upcoming
//
// @Summary  List upcoming matches, soonest first
// @Tags     matches
// @Produce  json
// @Success  200  {object}  matchListResponse
// @Router   /api/v1/matches/upcoming [get]
func (h *MatchHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	matches, err := h.svc.Upcoming(r.Context())
	h.respond(w, r, matches, err)
}

// Search handles GET /api/v1/matches/search?q=
//
// @Summary  Search matches by team name
// @Tags     matches
// @Produce  json
// @Param    q    query     string  true  "Substring of either team name"
// @Success  200  {object}  matchListResponse
// @Failure  422  {object}  map[string]string
// @Router   /api/v1/matches/search [get]
func (h *MatchHandler) Search(w http.ResponseWriter, r *http.Request) {
	matches, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	h.respond(w, r, matches, err)
}

func (h *MatchHandler) respond(w http.ResponseWriter, r *http.Request, matches []*domain.Match, err error) {
	if err != nil {
		h.logger.Warn("list matches failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}
	if matches == nil {
		matches = []*domain.Match{}
	}
	respondJSON(w, http.StatusOK, matchListResponse{Data: matches})
}
