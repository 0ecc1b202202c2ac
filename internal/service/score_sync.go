package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/feed"
	"github.com/scoreline/score-sync/internal/repository"
)

// SyncHooks carries the metric callbacks injected by main.
type SyncHooks struct {
	OnRun    func(report *domain.SyncReport, elapsed time.Duration)
	OnRecord func(outcome string)
}

// SyncOptions configures the score sync job.
type SyncOptions struct {
	Mode domain.NotifyMode
	// Budget bounds a whole run. Zero means no budget.
	Budget time.Duration
	Hooks  SyncHooks
}

// Record outcomes reported through SyncHooks.OnRecord.
const (
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
)

// ScoreSyncService drives one pass over the live feed: resolve each record,
// overwrite the score, and fan out goal notifications. A failing stage only
// ends its own record; a failing feed ends the run.
//
// Only one run executes at a time per service instance. Runs in other
// processes are not coordinated.
type ScoreSyncService struct {
	resolver *MatchResolver
	updater  *ScoreUpdater
	fanout   *NotificationFanout
	mode     domain.NotifyMode
	budget   time.Duration
	hooks    SyncHooks
	logger   *zap.Logger
	now      func() time.Time

	running atomic.Bool
	mu      sync.RWMutex
	last    *domain.SyncReport
}

func NewScoreSyncService(
	matches repository.MatchRepository,
	favorites repository.FavoriteRepository,
	notifications repository.NotificationRepository,
	opts SyncOptions,
	logger *zap.Logger,
) *ScoreSyncService {
	if !opts.Mode.IsValid() {
		opts.Mode = domain.NotifyOnDelta
	}
	if opts.Hooks.OnRun == nil {
		opts.Hooks.OnRun = func(*domain.SyncReport, time.Duration) {}
	}
	if opts.Hooks.OnRecord == nil {
		opts.Hooks.OnRecord = func(string) {}
	}
	return &ScoreSyncService{
		resolver: NewMatchResolver(matches),
		updater:  NewScoreUpdater(matches),
		fanout:   NewNotificationFanout(favorites, notifications),
		mode:     opts.Mode,
		budget:   opts.Budget,
		hooks:    opts.Hooks,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Mode returns the notification trigger policy in effect.
func (s *ScoreSyncService) Mode() domain.NotifyMode { return s.mode }

// Run executes one sync pass against src. The returned report is never nil
// unless the error is domain.ErrSyncInProgress; hard failures are expressed
// in the report, not as an error.
func (s *ScoreSyncService) Run(ctx context.Context, src feed.Adapter) (*domain.SyncReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncInProgress
	}
	defer s.running.Store(false)

	if s.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.budget)
		defer cancel()
	}

	start := time.Now()
	report := &domain.SyncReport{Success: true, StartedAt: s.now()}
	defer func() {
		report.FinishedAt = s.now()
		s.hooks.OnRun(report, time.Since(start))
		s.remember(report)
	}()

	records, err := src.FetchLiveScores(ctx)
	if err != nil {
		s.failFromContext(ctx, report, err, domain.FailureFeed)
		s.logger.Error("live score fetch failed", zap.Error(err), zap.String("failure", string(report.Failure)))
		return report, nil
	}
	report.Total = len(records)

	for _, rec := range records {
		if ctx.Err() != nil {
			s.failFromContext(ctx, report, ctx.Err(), domain.FailureTimeout)
			s.logger.Warn("score sync stopped early",
				zap.String("failure", string(report.Failure)),
				zap.Int("processed", report.Updated+report.Skipped),
				zap.Int("total", report.Total),
			)
			break
		}
		s.syncRecord(ctx, rec, report)
	}

	s.logger.Info("score sync finished",
		zap.Bool("success", report.Success),
		zap.Int("total", report.Total),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("notifications", report.NotificationsCreated),
		zap.String("mode", string(s.mode)),
	)
	return report, nil
}

// LastReport returns a copy of the most recent report, or nil before the first run.
func (s *ScoreSyncService) LastReport() *domain.SyncReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	cp := *s.last
	cp.Skips = append([]domain.Skip(nil), s.last.Skips...)
	return &cp
}

// ---- private helpers ----

func (s *ScoreSyncService) syncRecord(ctx context.Context, rec domain.FeedRecord, report *domain.SyncReport) {
	log := s.logger.With(
		zap.String("home_team", rec.HomeTeam),
		zap.String("away_team", rec.AwayTeam),
	)

	if err := rec.Validate(); err != nil {
		log.Warn("skipping malformed feed record", zap.Error(err))
		s.skip(report, rec, domain.SkipInvalid, err)
		return
	}

	res, err := s.resolver.Resolve(ctx, rec)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn("no live match for feed record")
		s.skip(report, rec, domain.SkipNotFound, nil)
		return
	}
	if err != nil {
		log.Error("match lookup failed", zap.Error(err))
		s.skip(report, rec, domain.SkipLookupFailed, err)
		return
	}
	if res.Ambiguous {
		report.Ambiguous++
		log.Warn("several live matches share this team pair, skipping", zap.String("first_match_id", res.Match.ID))
		s.skip(report, rec, domain.SkipAmbiguous, nil)
		return
	}

	prevHome, prevAway := res.Match.ScoreHome, res.Match.ScoreAway
	if err := s.updater.ApplyScore(ctx, res.Match.ID, rec.ScoreHome, rec.ScoreAway); err != nil {
		log.Error("score update failed", zap.String("match_id", res.Match.ID), zap.Error(err))
		s.skip(report, rec, domain.SkipUpdateFailed, err)
		return
	}
	report.Updated++
	s.hooks.OnRecord(OutcomeUpdated)

	if !s.mode.ShouldNotify(rec, prevHome, prevAway) {
		return
	}

	created, err := s.fanout.NotifyInterested(ctx, res.Match.ID, rec.HomeTeam, rec.AwayTeam)
	if err != nil {
		log.Error("goal notification fan-out failed", zap.String("match_id", res.Match.ID), zap.Error(err))
		s.skip(report, rec, domain.SkipNotifyFailed, err)
		return
	}
	report.NotificationsCreated += created
	if created > 0 {
		log.Info("goal notifications created", zap.String("match_id", res.Match.ID), zap.Int("count", created))
	}
}

func (s *ScoreSyncService) skip(report *domain.SyncReport, rec domain.FeedRecord, reason domain.SkipReason, err error) {
	report.AddSkip(rec, reason, err)
	s.hooks.OnRecord(OutcomeSkipped)
}

// failFromContext classifies a hard failure: an expired budget is a timeout,
// a cancelled caller is a cancellation, anything else is fallback.
func (s *ScoreSyncService) failFromContext(ctx context.Context, report *domain.SyncReport, err error, fallback domain.FailureKind) {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		report.Fail(domain.FailureTimeout, domain.ErrSyncTimeout)
	case errors.Is(ctx.Err(), context.Canceled):
		report.Fail(domain.FailureCanceled, err)
	default:
		report.Fail(fallback, err)
	}
}

func (s *ScoreSyncService) remember(report *domain.SyncReport) {
	cp := *report
	cp.Skips = append([]domain.Skip(nil), report.Skips...)
	s.mu.Lock()
	s.last = &cp
	s.mu.Unlock()
}
