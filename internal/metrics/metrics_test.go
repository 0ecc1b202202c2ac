package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/metrics"
	"github.com/scoreline/score-sync/internal/service"
)

func TestSyncHooks(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	hooks := m.SyncHooks()

	hooks.OnRecord(service.OutcomeUpdated)
	hooks.OnRecord(service.OutcomeUpdated)
	hooks.OnRecord(service.OutcomeSkipped)
	hooks.OnRun(&domain.SyncReport{Success: true, Updated: 2, Skipped: 1, NotificationsCreated: 3, FinishedAt: time.Unix(1700000000, 0)}, 10*time.Millisecond)

	failed := &domain.SyncReport{}
	failed.Fail(domain.FailureFeed, domain.ErrFeedUnavailable)
	hooks.OnRun(failed, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SyncRecords.WithLabelValues(service.OutcomeUpdated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRecords.WithLabelValues(service.OutcomeSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("feed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.NotificationsCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastRunUpdated))
}
