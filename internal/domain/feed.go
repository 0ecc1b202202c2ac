package domain

// FeedRecord is one in-progress fixture as reported by the live score feed.
// It only exists for the duration of a single sync run.
type FeedRecord struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	ScoreHome int    `json:"score_home"`
	ScoreAway int    `json:"score_away"`
}

// Validate rejects records that cannot be resolved or stored.
func (r FeedRecord) Validate() error {
	if r.HomeTeam == "" || r.AwayTeam == "" || r.ScoreHome < 0 || r.ScoreAway < 0 {
		return ErrInvalidSnapshot
	}
	return nil
}

// AnyPositive reports whether at least one side has scored.
func (r FeedRecord) AnyPositive() bool {
	return r.ScoreHome > 0 || r.ScoreAway > 0
}

// SameScore reports whether the stored pair already equals the record's pair.
// A nil stored score never matches.
func (r FeedRecord) SameScore(home, away *int) bool {
	if home == nil || away == nil {
		return false
	}
	return *home == r.ScoreHome && *away == r.ScoreAway
}

// Snapshot is an explicit feed payload supplied by the caller instead of the
// configured provider.
type Snapshot struct {
	Records []FeedRecord `json:"records"`
}

func (s *Snapshot) Validate() error {
	for _, r := range s.Records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NotifyMode controls when a score update fans out goal notifications.
type NotifyMode string

const (
	// NotifyOnDelta fires only when the stored score changes to a pair with a
	// positive value. Re-running on an unchanged feed creates nothing.
	NotifyOnDelta NotifyMode = "delta"
	// NotifyEveryPoll fires on every run while any score is positive.
	NotifyEveryPoll NotifyMode = "every_poll"
)

func (m NotifyMode) IsValid() bool {
	switch m {
	case NotifyOnDelta, NotifyEveryPoll:
		return true
	}
	return false
}

// ShouldNotify applies the trigger policy to a record and the score that was
// stored before the update.
func (m NotifyMode) ShouldNotify(rec FeedRecord, prevHome, prevAway *int) bool {
	if !rec.AnyPositive() {
		return false
	}
	if m == NotifyEveryPoll {
		return true
	}
	return !rec.SameScore(prevHome, prevAway)
}
