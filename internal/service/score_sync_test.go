package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/feed"
	"github.com/scoreline/score-sync/internal/repository"
	"github.com/scoreline/score-sync/internal/service"
)

type syncFixture struct {
	svc           *service.ScoreSyncService
	matches       *repository.MockMatchRepository
	favorites     *repository.MockFavoriteRepository
	notifications *repository.MockNotificationRepository
}

func newSyncFixture(t *testing.T, opts service.SyncOptions) *syncFixture {
	t.Helper()
	f := &syncFixture{
		matches:       repository.NewMockMatchRepository(),
		favorites:     repository.NewMockFavoriteRepository(),
		notifications: repository.NewMockNotificationRepository(),
	}
	f.svc = service.NewScoreSyncService(f.matches, f.favorites, f.notifications, opts, zap.NewNop())
	return f
}

func (f *syncFixture) addLive(t *testing.T, home, away string, score *[2]int, start time.Time) *domain.Match {
	t.Helper()
	m := &domain.Match{
		ID:        uuid.New().String(),
		League:    "Premier League",
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: start,
		Status:    domain.MatchLive,
		Odds:      domain.Odds{Home: 2.1, Draw: 3.4, Away: 3.2},
	}
	if score != nil {
		h, a := score[0], score[1]
		m.ScoreHome, m.ScoreAway = &h, &a
	}
	f.matches.Add(m)
	return m
}

func (f *syncFixture) addFavorite(t *testing.T, userID, team string) {
	t.Helper()
	require.NoError(t, f.favorites.Create(context.Background(), &domain.Favorite{
		ID:        uuid.New().String(),
		UserID:    userID,
		TeamName:  team,
		CreatedAt: time.Now().UTC(),
	}))
}

func static(records ...domain.FeedRecord) feed.Adapter {
	return feed.NewStaticAdapter(records)
}

var arsenalRecord = domain.FeedRecord{HomeTeam: "Arsenal", AwayTeam: "Manchester United", ScoreHome: 2, ScoreAway: 1}

func TestScoreSync_GoalScenario(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	m := f.addLive(t, "Arsenal", "Manchester United", &[2]int{1, 1}, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")

	report, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 2, report.NotificationsCreated)

	stored := f.matches.Get(m.ID)
	require.NotNil(t, stored.ScoreHome)
	assert.Equal(t, 2, *stored.ScoreHome)
	assert.Equal(t, 1, *stored.ScoreAway)

	created := f.notifications.All()
	require.Len(t, created, 2)
	for _, n := range created {
		assert.Equal(t, domain.NotificationGoal, n.Kind)
		assert.Equal(t, m.ID, n.MatchID)
		assert.False(t, n.Read)
	}
}

func TestScoreSync_UnknownTeamPairIsSkipped(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	f.addLive(t, "Barcelona", "Real Madrid", &[2]int{0, 0}, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")

	report, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 0, report.NotificationsCreated)
	require.Len(t, report.Skips, 1)
	assert.Equal(t, domain.SkipNotFound, report.Skips[0].Reason)
	assert.Equal(t, 0, f.matches.Writes)
}

func TestScoreSync_FeedFailureMakesNoWrites(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	f.addLive(t, "Arsenal", "Manchester United", &[2]int{1, 1}, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")

	broken := feed.AdapterFunc(func(context.Context) ([]domain.FeedRecord, error) {
		return nil, errors.New("provider returned 503")
	})

	report, err := f.svc.Run(context.Background(), broken)
	require.NoError(t, err)

	assert.False(t, report.Success)
	assert.Equal(t, domain.FailureFeed, report.Failure)
	assert.Contains(t, report.Error, "503")
	assert.Equal(t, 0, f.matches.Writes)
	assert.Empty(t, f.notifications.All())
}

func TestScoreSync_DeltaModeIsIdempotent(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	f.addLive(t, "Arsenal", "Manchester United", &[2]int{1, 1}, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")
	f.addFavorite(t, gofakeit.UUID(), "Manchester United")

	first, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)
	assert.Equal(t, 2, first.NotificationsCreated)

	second, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)
	assert.Equal(t, 1, second.Updated)
	assert.Equal(t, 0, second.NotificationsCreated)
	assert.Len(t, f.notifications.All(), 2)
}

func TestScoreSync_EveryPollModeRefires(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyEveryPoll})
	f.addLive(t, "Arsenal", "Manchester United", &[2]int{2, 1}, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")

	for i := 0; i < 2; i++ {
		report, err := f.svc.Run(context.Background(), static(arsenalRecord))
		require.NoError(t, err)
		assert.Equal(t, 1, report.NotificationsCreated)
	}
	assert.Len(t, f.notifications.All(), 2)
}

func TestScoreSync_DuplicateFavoritesEachNotified(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	f.addLive(t, "Arsenal", "Manchester United", nil, time.Now())

	fan := gofakeit.UUID()
	f.addFavorite(t, fan, "Arsenal")
	f.addFavorite(t, fan, "Arsenal")
	f.addFavorite(t, fan, "Manchester United")
	f.addFavorite(t, gofakeit.UUID(), "Chelsea")

	report, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)
	assert.Equal(t, 3, report.NotificationsCreated)

	for _, n := range f.notifications.All() {
		assert.Equal(t, fan, n.UserID)
	}
}

func TestScoreSync_TeamNamesAreCaseSensitive(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	f.addLive(t, "Arsenal", "Manchester United", nil, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "arsenal")

	report, err := f.svc.Run(context.Background(), static(
		arsenalRecord,
		domain.FeedRecord{HomeTeam: "arsenal", AwayTeam: "manchester united", ScoreHome: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.NotificationsCreated)
}

func TestScoreSync_OnlyLiveMatchesResolve(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	m := f.addLive(t, "Arsenal", "Manchester United", &[2]int{3, 0}, time.Now())
	finished := f.matches.Get(m.ID)
	finished.Status = domain.MatchFinished
	f.matches.Add(finished)

	report, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 3, *f.matches.Get(m.ID).ScoreHome)
}

func TestScoreSync_UpdateFailureIsolatedToRecord(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	bad := f.addLive(t, "Arsenal", "Manchester United", nil, time.Now())
	good := f.addLive(t, "Barcelona", "Real Madrid", nil, time.Now())
	f.matches.UpdateErrFor = map[string]error{bad.ID: errors.New("write rejected")}

	report, err := f.svc.Run(context.Background(), static(
		arsenalRecord,
		domain.FeedRecord{HomeTeam: "Barcelona", AwayTeam: "Real Madrid", ScoreHome: 1, ScoreAway: 1},
	))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, domain.SkipUpdateFailed, report.Skips[0].Reason)
	assert.Nil(t, f.matches.Get(bad.ID).ScoreHome)
	assert.Equal(t, 1, *f.matches.Get(good.ID).ScoreHome)
}

func TestScoreSync_LookupFailureIsSkipped(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	f.matches.FindErr = errors.New("connection reset")

	report, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)

	assert.True(t, report.Success)
	require.Len(t, report.Skips, 1)
	assert.Equal(t, domain.SkipLookupFailed, report.Skips[0].Reason)
}

func TestScoreSync_NotificationFailureKeepsScore(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	m := f.addLive(t, "Arsenal", "Manchester United", &[2]int{1, 1}, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")
	f.notifications.CreateManyErr = errors.New("insert rejected")

	report, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, domain.SkipNotifyFailed, report.Skips[0].Reason)
	assert.Equal(t, 2, *f.matches.Get(m.ID).ScoreHome)
}

func TestScoreSync_AmbiguousPairIsSkipped(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})
	now := time.Now()
	earlier := f.addLive(t, "Arsenal", "Manchester United", nil, now.Add(-time.Hour))
	later := f.addLive(t, "Arsenal", "Manchester United", nil, now)
	f.addFavorite(t, gofakeit.UUID(), "Arsenal")

	report, err := f.svc.Run(context.Background(), static(arsenalRecord))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Ambiguous)
	require.Len(t, report.Skips, 1)
	assert.Equal(t, domain.SkipAmbiguous, report.Skips[0].Reason)

	assert.Equal(t, 0, f.matches.Writes)
	assert.Nil(t, f.matches.Get(earlier.ID).ScoreHome)
	assert.Nil(t, f.matches.Get(later.ID).ScoreHome)
	assert.Empty(t, f.notifications.All())
}

func TestScoreSync_GoallessDoesNotNotify(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyEveryPoll})
	f.addLive(t, "Barcelona", "Real Madrid", nil, time.Now())
	f.addFavorite(t, gofakeit.UUID(), "Barcelona")

	report, err := f.svc.Run(context.Background(), static(domain.FeedRecord{HomeTeam: "Barcelona", AwayTeam: "Real Madrid"}))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 0, report.NotificationsCreated)
}

func TestScoreSync_MalformedRecordIsSkipped(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})

	report, err := f.svc.Run(context.Background(), static(domain.FeedRecord{HomeTeam: "Arsenal", ScoreHome: 1}))
	require.NoError(t, err)

	assert.True(t, report.Success)
	require.Len(t, report.Skips, 1)
	assert.Equal(t, domain.SkipInvalid, report.Skips[0].Reason)
}

func TestScoreSync_BudgetExpiryIsTimeout(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta, Budget: 20 * time.Millisecond})

	slow := feed.AdapterFunc(func(ctx context.Context) ([]domain.FeedRecord, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	report, err := f.svc.Run(context.Background(), slow)
	require.NoError(t, err)

	assert.False(t, report.Success)
	assert.Equal(t, domain.FailureTimeout, report.Failure)
	assert.Equal(t, domain.ErrSyncTimeout.Error(), report.Error)
}

func TestScoreSync_RejectsOverlappingRun(t *testing.T) {
	f := newSyncFixture(t, service.SyncOptions{Mode: domain.NotifyOnDelta})

	entered := make(chan struct{})
	release := make(chan struct{})
	blocking := feed.AdapterFunc(func(context.Context) ([]domain.FeedRecord, error) {
		close(entered)
		<-release
		return nil, nil
	})

	done := make(chan *domain.SyncReport, 1)
	go func() {
		report, _ := f.svc.Run(context.Background(), blocking)
		done <- report
	}()
	<-entered

	_, err := f.svc.Run(context.Background(), static(arsenalRecord))
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	close(release)
	select {
	case report := <-done:
		require.NotNil(t, report)
		assert.True(t, report.Success)
	case <-time.After(time.Second):
		t.Fatal("first run did not finish")
	}
}

func TestScoreSync_HooksAndLastReport(t *testing.T) {
	var runs int
	outcomes := map[string]int{}
	f := newSyncFixture(t, service.SyncOptions{
		Mode: domain.NotifyOnDelta,
		Hooks: service.SyncHooks{
			OnRun:    func(*domain.SyncReport, time.Duration) { runs++ },
			OnRecord: func(outcome string) { outcomes[outcome]++ },
		},
	})
	f.addLive(t, "Arsenal", "Manchester United", nil, time.Now())

	assert.Nil(t, f.svc.LastReport())

	_, err := f.svc.Run(context.Background(), static(
		arsenalRecord,
		domain.FeedRecord{HomeTeam: "Ajax", AwayTeam: "PSV", ScoreHome: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, outcomes[service.OutcomeUpdated])
	assert.Equal(t, 1, outcomes[service.OutcomeSkipped])

	last := f.svc.LastReport()
	require.NotNil(t, last)
	assert.Equal(t, 2, last.Total)
	assert.False(t, last.FinishedAt.Before(last.StartedAt))
}
