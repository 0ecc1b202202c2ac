package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/service"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	SyncRuns             *prometheus.CounterVec
	SyncRecords          *prometheus.CounterVec
	NotificationsCreated prometheus.Counter
	SyncDuration         prometheus.Histogram
	LastRunTimestamp     prometheus.Gauge
	LastRunUpdated       prometheus.Gauge
	LastRunSkipped       prometheus.Gauge
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "score_sync_runs_total",
			Help: "Score sync runs by result (success, feed, timeout, canceled).",
		}, []string{"result"}),

		SyncRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "score_sync_records_total",
			Help: "Feed records processed by outcome.",
		}, []string{"outcome"}),

		NotificationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "score_sync_notifications_created_total",
			Help: "Goal notifications written by the score sync job.",
		}),

		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "score_sync_duration_seconds",
			Help:    "Wall time of a score sync run, feed fetch included.",
			Buckets: prometheus.DefBuckets,
		}),

		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "score_sync_last_run_timestamp_seconds",
			Help: "Unix time the last score sync run finished.",
		}),
		LastRunUpdated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "score_sync_last_run_updated",
			Help: "Matches updated by the last score sync run.",
		}),
		LastRunSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "score_sync_last_run_skipped",
			Help: "Records skipped by the last score sync run.",
		}),
	}

	reg.MustRegister(
		m.SyncRuns,
		m.SyncRecords,
		m.NotificationsCreated,
		m.SyncDuration,
		m.LastRunTimestamp,
		m.LastRunUpdated,
		m.LastRunSkipped,
	)

	return m
}

// SyncHooks returns the callbacks expected by service.SyncOptions.
// Centralises the prometheus observation calls so the service stays import-free.
func (m *Metrics) SyncHooks() service.SyncHooks {
	return service.SyncHooks{
		OnRun: func(report *domain.SyncReport, elapsed time.Duration) {
			result := "success"
			if !report.Success {
				result = string(report.Failure)
			}
			m.SyncRuns.WithLabelValues(result).Inc()
			m.SyncDuration.Observe(elapsed.Seconds())
			m.NotificationsCreated.Add(float64(report.NotificationsCreated))
			m.LastRunTimestamp.Set(float64(report.FinishedAt.Unix()))
			m.LastRunUpdated.Set(float64(report.Updated))
			m.LastRunSkipped.Set(float64(report.Skipped))
		},
		OnRecord: func(outcome string) {
			m.SyncRecords.WithLabelValues(outcome).Inc()
		},
	}
}
