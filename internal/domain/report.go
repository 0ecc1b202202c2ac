package domain

import "time"

// SkipReason explains why a feed record did not complete every stage.
type SkipReason string

const (
	SkipNotFound     SkipReason = "not_found"
	SkipLookupFailed SkipReason = "lookup_failed"
	SkipUpdateFailed SkipReason = "update_failed"
	SkipNotifyFailed SkipReason = "notify_failed"
	SkipInvalid      SkipReason = "invalid_record"
	SkipAmbiguous    SkipReason = "ambiguous"
)

// FailureKind classifies a run that did not complete.
type FailureKind string

const (
	FailureNone     FailureKind = ""
	FailureFeed     FailureKind = "feed"
	FailureTimeout  FailureKind = "timeout"
	FailureCanceled FailureKind = "canceled"
)

// Skip records one per-record failure.
type Skip struct {
	HomeTeam string     `json:"home_team"`
	AwayTeam string     `json:"away_team"`
	Reason   SkipReason `json:"reason"`
	Error    string     `json:"error,omitempty"`
}

// SyncReport is the aggregate result of one score sync run.
//
// A notify_failed skip still counts the record as updated: the score write
// happened, only the fan-out did not.
type SyncReport struct {
	Success              bool        `json:"success"`
	Total                int         `json:"total"`
	Updated              int         `json:"updated"`
	Skipped              int         `json:"skipped"`
	Ambiguous            int         `json:"ambiguous"`
	NotificationsCreated int         `json:"notifications_created"`
	Skips                []Skip      `json:"skips,omitempty"`
	Failure              FailureKind `json:"failure,omitempty"`
	Error                string      `json:"error,omitempty"`
	StartedAt            time.Time   `json:"started_at"`
	FinishedAt           time.Time   `json:"finished_at"`
}

// AddSkip appends a skip and bumps the skip counter.
func (r *SyncReport) AddSkip(rec FeedRecord, reason SkipReason, err error) {
	s := Skip{HomeTeam: rec.HomeTeam, AwayTeam: rec.AwayTeam, Reason: reason}
	if err != nil {
		s.Error = err.Error()
	}
	r.Skips = append(r.Skips, s)
	r.Skipped++
}

// Fail marks the run as a hard failure.
func (r *SyncReport) Fail(kind FailureKind, err error) {
	r.Success = false
	r.Failure = kind
	if err != nil {
		r.Error = err.Error()
	}
}
