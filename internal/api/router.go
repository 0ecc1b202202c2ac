package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/api/handler"
	apimw "github.com/scoreline/score-sync/internal/api/middleware"
	"github.com/scoreline/score-sync/internal/auth"
	"github.com/scoreline/score-sync/internal/feed"
	"github.com/scoreline/score-sync/internal/ratelimiter"
	"github.com/scoreline/score-sync/internal/service"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Matches       *service.MatchService
	Favorites     *service.FavoriteService
	Notifications *service.NotificationService
	Sync          *service.ScoreSyncService

	// Feed is the adapter the job endpoint runs against by default.
	Feed               feed.Adapter
	AcceptSnapshot     bool
	RequireServiceRole bool

	Verifier *auth.Verifier
	Limiters *ratelimiter.IPLimiters
	DB       handler.Pinger
	Gatherer prometheus.Gatherer
}

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(d Deps, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)          // recover panics, return 500
	r.Use(chimw.RealIP)             // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(1<<20)) // 1 MB max request body
	r.Use(apimw.CorrelationID)      // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(logger))

	// --- handler instances ---
	hh := handler.NewHealthHandler(d.DB, logger)
	mh := handler.NewMatchHandler(d.Matches, logger)
	fh := handler.NewFavoriteHandler(d.Favorites, logger)
	nh := handler.NewNotificationHandler(d.Notifications, logger)
	sh := handler.NewSyncHandler(d.Sync, d.Feed, d.AcceptSnapshot, logger)
	xh := handler.NewMetricsHandler(d.Sync)

	// --- routes ---
	r.Get("/health", hh.Health)
	r.Get("/ready", hh.Ready)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	var roles []string
	if d.RequireServiceRole {
		roles = []string{auth.RoleService}
	}
	requireUser := apimw.RequireAuth(d.Verifier, logger)
	requireJob := apimw.RequireAuth(d.Verifier, logger, roles...)

	r.Route("/api/v1", func(r chi.Router) {
		if d.Limiters != nil {
			r.Use(apimw.RateLimit(d.Limiters))
		}

		// Job endpoint; the preflight must stay unauthenticated.
		r.Route("/jobs/update-scores", func(r chi.Router) {
			r.Use(apimw.CORS)
			r.Options("/", sh.Preflight)
			r.With(requireJob).Post("/", sh.Run)
		})

		// Public match listings
		r.Get("/matches", mh.List)
		r.Get("/matches/live", mh.Live)
		r.Get("/matches/upcoming", mh.Upcoming)
		r.Get("/matches/search", mh.Search)

		r.Route("/me", func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/favorites", fh.List)
			r.Post("/favorites", fh.Add)
			r.Delete("/favorites/{id}", fh.Remove)
			r.Get("/notifications", nh.List)
			r.Post("/notifications/{id}/read", nh.MarkRead)
		})

		// JSON snapshot of the last sync run
		r.Get("/sync/last", xh.LastSync)
	})

	return r
}
